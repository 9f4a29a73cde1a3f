package model

type JobTitle struct {
	ID    int64
	Title string
}

// Contact is a client-side person. A contact name may hold only one job
// title across the directory; the service enforces this on save.
type Contact struct {
	ID          int64
	ClientID    int64
	JobTitleID  *int64
	Name        string
	Email       string
	PhoneNumber *string
}

// ContactDetail carries the joined client and job-title names.
type ContactDetail struct {
	Contact
	ClientName   string
	JobTitleName *string
}
