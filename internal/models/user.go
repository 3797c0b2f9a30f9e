// Package models defines the durable record types of dukabook: the user
// (principal), the shop business records, and the sync outbox entry.
package models

import "time"

// User is the durable principal record. The credential manager references it
// by id only; the credential itself never lives in the relational store.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	IsPremium bool      `json:"isPremium"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
