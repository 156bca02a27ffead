package services

import (
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// CreateChanges builds the change set recorded for a freshly created
// entity: every field goes from nil to its initial value.
func CreateChanges(fields map[string]interface{}) models.ChangeSet {
	out := make(models.ChangeSet, len(fields))
	for name, value := range fields {
		out[name] = models.FieldChange{Old: nil, New: value}
	}
	return out
}

// UpdateChanges builds the change set for an update: only fields whose
// value actually changed are recorded. An empty result means the update
// was a no-op and needs no audit entry.
func UpdateChanges(old, updated map[string]interface{}) models.ChangeSet {
	out := make(models.ChangeSet)
	for name, newValue := range updated {
		if oldValue, ok := old[name]; !ok || oldValue != newValue {
			out[name] = models.FieldChange{Old: old[name], New: newValue}
		}
	}
	return out
}

// DeleteChanges builds the change set recorded for a deletion.
func DeleteChanges() models.ChangeSet {
	return models.ChangeSet{
		"deleted": models.FieldChange{Old: false, New: true},
	}
}
