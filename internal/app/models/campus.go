package models

// Campus is static reference data; nothing in the data layer mutates it.
type Campus struct {
	BaseEntity `yaml:",inline"`
	Slug       string `json:"slug" yaml:"slug"`
	NameKo     string `json:"name_ko" yaml:"name_ko"`
	NameEn     string `json:"name_en" yaml:"name_en"`
	City       string `json:"city" yaml:"city"`
	IsActive   bool   `json:"is_active" yaml:"is_active"`
}
