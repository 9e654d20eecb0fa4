package model

import "github.com/google/uuid"

// Record bir koleksiyondaki dokümanı temsil eder
type Record interface {
	RecordID() string
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
