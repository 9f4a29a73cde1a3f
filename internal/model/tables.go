package model

// Table bindings for the gorm naming layer. Contracts live in the legacy
// client_contracts table.

func (User) TableName() string      { return "users" }
func (Client) TableName() string    { return "clients" }
func (Contract) TableName() string  { return "client_contracts" }
func (Objection) TableName() string { return "objections" }
func (Contact) TableName() string   { return "contacts" }
func (JobTitle) TableName() string  { return "job_titles" }
func (Supplier) TableName() string  { return "suppliers" }
func (Utility) TableName() string   { return "utilities" }
