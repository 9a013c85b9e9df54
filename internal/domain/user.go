package domain

import "time"

// User is an account record. Username is the immutable identifier; Password
// holds the derived credential digest, never the plain secret. MemberSince is
// stored truncated to whole seconds because it doubles as salt material for
// the password digest and must stay byte-stable for the account's lifetime.
type User struct {
	Username    string
	Password    string
	MemberSince time.Time
	Admin       bool
}

// SaltTimestamp renders a membership timestamp the way it is fed into the
// password KDF: ISO-8601 in UTC with the sub-second component zeroed.
func SaltTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05.000Z07:00")
}
