// Package models defines the client-side data shapes exchanged with the
// portfolio backend and kept in the local session.
package models

// User is the account/profile record. Every field is optional: a partial
// record (for example straight after registration) is valid.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Title    string `json:"title,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// UserPatch is a partial User. A nil field is absent; a pointer to "" is an
// explicit blank value.
type UserPatch struct {
	ID       *int64  `json:"id,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Title    *string `json:"title,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// Apply returns a copy of u with every present field of p written over it.
// Absent fields are left untouched; there is no deep merge.
func (u User) Apply(p UserPatch) User {
	if p.ID != nil {
		u.ID = *p.ID
	}
	setString(&u.Username, p.Username)
	setString(&u.Email, p.Email)
	setString(&u.FullName, p.FullName)
	setString(&u.Title, p.Title)
	setString(&u.Bio, p.Bio)
	setString(&u.Location, p.Location)
	setString(&u.Website, p.Website)
	setString(&u.Phone, p.Phone)
	return u
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Patch converts u into a UserPatch carrying its non-empty fields.
func (u User) Patch() UserPatch {
	var p UserPatch
	if u.ID != 0 {
		id := u.ID
		p.ID = &id
	}
	p.Username = nonEmpty(u.Username)
	p.Email = nonEmpty(u.Email)
	p.FullName = nonEmpty(u.FullName)
	p.Title = nonEmpty(u.Title)
	p.Bio = nonEmpty(u.Bio)
	p.Location = nonEmpty(u.Location)
	p.Website = nonEmpty(u.Website)
	p.Phone = nonEmpty(u.Phone)
	return p
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Merge overlays q onto p field by field and returns the result.
func (p UserPatch) Merge(q UserPatch) UserPatch {
	if q.ID != nil {
		p.ID = q.ID
	}
	for _, f := range []struct{ dst, src **string }{
		{&p.Username, &q.Username},
		{&p.Email, &q.Email},
		{&p.FullName, &q.FullName},
		{&p.Title, &q.Title},
		{&p.Bio, &q.Bio},
		{&p.Location, &q.Location},
		{&p.Website, &q.Website},
		{&p.Phone, &q.Phone},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	return p
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string {
	return &s
}
