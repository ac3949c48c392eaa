package models

import "time"

// LoginInfo is the redis-side bookkeeping for one portal participant.
type LoginInfo struct {
	Email          string    `json:"email"`
	LoginCount     int       `json:"login_count"`
	LastLoginTime  time.Time `json:"last_login_dttm_utc"`
	FirstLoginTime time.Time `json:"first_login_dttm_utc"`
}
