package domain

import "time"

type DiaryEntry struct {
	EntryID   string    `json:"id" dynamodbav:"entry_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Body      string    `json:"body" dynamodbav:"body"`
	EntryDate time.Time `json:"entry_date" dynamodbav:"entry_date,unixtime"`
	Audit
}

type DiaryEntryInput struct {
	Title     string     `json:"title" validate:"required"`
	Body      string     `json:"body"`
	EntryDate *time.Time `json:"entry_date"`
}
