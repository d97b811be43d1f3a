package models

// Setting is a single key-value pair of the settings store. The
// extraction rule set is persisted here, one row per field.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
	Timestamps
}
