package domain

type Medicine struct {
	MedicineID string `json:"id" dynamodbav:"medicine_id"`
	Name       string `json:"name" dynamodbav:"name"`
	Dosage     string `json:"dosage,omitempty" dynamodbav:"dosage"`
	Schedule   string `json:"schedule,omitempty" dynamodbav:"schedule"` // free text, e.g. "after lunch"
	Notes      string `json:"notes,omitempty" dynamodbav:"notes"`
	Audit
}

type MedicineInput struct {
	Name     string `json:"name" validate:"required"`
	Dosage   string `json:"dosage"`
	Schedule string `json:"schedule"`
	Notes    string `json:"notes"`
}
