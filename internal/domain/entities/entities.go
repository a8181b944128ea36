package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("reset token invalid")
	ErrTokenExpired       = errors.New("reset token expired")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageWriteFailed = errors.New("storage write failed")
)

// UserRole identifies what a user is allowed to do
type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRolePsychologist UserRole = "psychologist"
	UserRoleClient       UserRole = "client"
)

// IsValid reports whether the role is one of the known roles
func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRolePsychologist, UserRoleClient:
		return true
	default:
		return false
	}
}

// User is the typed view over a user record. Extra carries every field the
// record holds beyond the required ones, so merge-updates never drop keys
// this version of the code does not know about.
type User struct {
	ID         string
	Name       string
	Email      string
	Password   string // bcrypt hash
	Role       UserRole
	AccessList []string
	Extra      Record
}

// UserFromRecord builds a typed user view from a raw record.
func UserFromRecord(r Record) *User {
	u := &User{
		ID:       r.StringField("id"),
		Name:     r.StringField("name"),
		Email:    r.StringField("email"),
		Password: r.StringField("password"),
		Role:     UserRole(r.StringField("role")),
		Extra:    Record{},
	}

	switch raw := r["accessList"].(type) {
	case []any:
		for _, v := range raw {
			if s, ok := v.(string); ok {
				u.AccessList = append(u.AccessList, s)
			}
		}
	case []string:
		u.AccessList = append(u.AccessList, raw...)
	}

	for k, v := range r {
		switch k {
		case "id", "name", "email", "password", "role", "accessList":
		default:
			u.Extra[k] = v
		}
	}

	return u
}

// ToRecord flattens the typed view back into a raw record, extension
// fields included.
func (u *User) ToRecord() Record {
	r := Record{}
	for k, v := range u.Extra {
		r[k] = v
	}

	r["id"] = u.ID
	r["name"] = u.Name
	r["email"] = u.Email
	r["password"] = u.Password
	r["role"] = string(u.Role)

	list := make([]any, 0, len(u.AccessList))
	for _, id := range u.AccessList {
		list = append(list, id)
	}
	r["accessList"] = list

	return r
}

// Sanitized returns the user record without the password hash, for
// response payloads.
func (u *User) Sanitized() Record {
	r := u.ToRecord()
	delete(r, "password")
	return r
}

// CanAccess reports whether the user may act on the owner's data: owners
// and admins always may, psychologists may when the owner appears on
// their access list.
func (u *User) CanAccess(ownerID string) bool {
	if u.ID == ownerID || u.Role == UserRoleAdmin {
		return true
	}
	for _, id := range u.AccessList {
		if id == ownerID {
			return true
		}
	}
	return false
}

// ResetToken is a single-use password reset credential. Expires is kept
// as Unix milliseconds in the stored record.
type ResetToken struct {
	Token   string
	UserID  string
	Expires time.Time
}

// ResetTokenFromRecord builds a typed token view from a raw record.
func ResetTokenFromRecord(r Record) *ResetToken {
	t := &ResetToken{
		Token:  r.StringField("token"),
		UserID: r.StringField("userId"),
	}

	switch v := r["expires"].(type) {
	case float64:
		t.Expires = time.UnixMilli(int64(v))
	case int64:
		t.Expires = time.UnixMilli(v)
	case int:
		t.Expires = time.UnixMilli(int64(v))
	}

	return t
}

// ToRecord flattens the token back into a raw record.
func (t *ResetToken) ToRecord() Record {
	return Record{
		"token":   t.Token,
		"userId":  t.UserID,
		"expires": t.Expires.UnixMilli(),
	}
}

// ExpiredAt reports whether the token has expired as of now.
func (t *ResetToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.Expires)
}
