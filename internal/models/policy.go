package models

// Policy is a named, ordered set of rules. Deleting a policy deletes its rules.
type Policy struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:100;not null;uniqueIndex:uq_policy_name"`
	Rules []Rule `json:"rules,omitempty" gorm:"foreignKey:PolicyID"`
}
