// Package models defines the records and upload descriptors exchanged with Troweb.
package models

// Record is one programming-language item to be created in a collection.
type Record struct {
	Title       string   `json:"title" yaml:"title"`
	Website     string   `json:"website" yaml:"website"`
	Designers   []string `json:"designers" yaml:"designers"`
	Description string   `json:"description" yaml:"description"`
}

// CreatedRecord is a Record as echoed back by the API, with the assigned id.
type CreatedRecord struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Website     string   `json:"website"`
	Designers   []string `json:"designers"`
	Description string   `json:"description"`
}
