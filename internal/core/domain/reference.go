package domain

// Division is an organizational unit of the chapter. Area is a free-text
// grouping label, not a separate entity; the area filter resolves to a set
// of division ids at query time.
type Division struct {
	DivisionID string `json:"divisionID"`
	Name       string `json:"name"`
	Area       string `json:"area"`
	AuditFields
}

// Category classifies transactions of a single kind. By convention a
// category's kind matches every transaction that references it; the
// reporting engine does not enforce this.
type Category struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Kind       TransactionKind `json:"kind"`
	AuditFields
}

// Person is an individual member a transaction may be tagged to.
type Person struct {
	PersonID   string  `json:"personID"`
	FullName   string  `json:"fullName"`
	DivisionID *string `json:"divisionID"`
	AuditFields
}

// Group is a collective a transaction may be tagged to.
type Group struct {
	GroupID    string  `json:"groupID"`
	Name       string  `json:"name"`
	DivisionID *string `json:"divisionID"`
	AuditFields
}
