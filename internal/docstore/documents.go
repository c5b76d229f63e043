package docstore

// Names of every document the system manages. The backup snapshot and
// the system reset walk this set.
const (
	DocReservations      = "reservations"
	DocMessages          = "messages"
	DocMenu              = "menu"
	DocGallery           = "gallery"
	DocCapacitySettings  = "capacity-settings"
	DocSEO               = "seo"
	DocSMTP              = "smtp"
	DocPolicies          = "policies"
	DocAbout             = "about"
	DocPushSubscriptions = "push-subscriptions"
	DocBackupLog         = "backup-log"
)

var managedDocuments = []string{
	DocReservations,
	DocMessages,
	DocMenu,
	DocGallery,
	DocCapacitySettings,
	DocSEO,
	DocSMTP,
	DocPolicies,
	DocAbout,
	DocPushSubscriptions,
	DocBackupLog,
}

var listDocuments = map[string]bool{
	DocReservations:      true,
	DocMessages:          true,
	DocMenu:              true,
	DocGallery:           true,
	DocPushSubscriptions: true,
	DocBackupLog:         true,
}

// Managed returns the names of all managed documents
func Managed() []string {
	result := make([]string, len(managedDocuments))
	copy(result, managedDocuments)
	return result
}

// IsManaged reports whether name is a managed document
func IsManaged(name string) bool {
	for _, doc := range managedDocuments {
		if doc == name {
			return true
		}
	}
	return false
}

// DefaultRaw returns the empty JSON representation for a document:
// an empty array for list documents, an empty object for singletons.
func DefaultRaw(name string) []byte {
	if listDocuments[name] {
		return []byte("[]")
	}
	return []byte("{}")
}
