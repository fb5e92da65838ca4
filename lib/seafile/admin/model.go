package admin

// User is keyed by e-mail. Libraries, Groups, Links and Shares are derived
// views, they stay empty until CollectInfo is run for the user.
type User struct {
	Email   string
	Id      string
	Created string
	// megabytes
	UsedSpace Size
	// megabytes, Unlimited when the server shows no bound
	Quota Size

	Libraries []Library
	Groups    []Membership
	Links     []*Link
	Shares    []Share
}

// Domain is everything after the first "@" of the e-mail.
func (u *User) Domain() string {
	return Domain(u.Email)
}

type Library struct {
	Id          string
	Name        string
	Owner       string
	Description string
}

type Group struct {
	Id      string
	Name    string
	Owner   string
	Created string
	// sorted
	Members     []string
	Description string
}

// HasMember reports whether email is a member of the group.
func (g Group) HasMember(email string) bool {
	for _, m := range g.Members {
		if m == email {
			return true
		}
	}
	return false
}

// Membership is a group a user belongs to, Owner is set when the user
// also owns the group.
type Membership struct {
	Group Group
	Owner bool
}

type LinkType string

const (
	LinkFile      LinkType = "file"
	LinkDirectory LinkType = "directory"
)

// code used in public urls, ex. /f/<id>/ or /d/<id>/
func (t LinkType) code() string {
	if t == LinkDirectory {
		return "d"
	}
	return "f"
}

// InferLinkType guesses the type of a link from its display name, shared
// directories are displayed with their path which starts with a "/".
func InferLinkType(name string) LinkType {
	if len(name) > 0 && name[0] == '/' {
		return LinkDirectory
	}
	return LinkFile
}

type Validity int

const (
	ValidityUnknown Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Link is keyed by the id taken from its admin action url.
type Link struct {
	Id      string
	Name    string
	Owner   string
	Created string
	Count   int
	Type    LinkType
	// public url
	Url string
	// set once by Scraper.Validate
	Validity Validity
}

type ShareType string

const (
	ShareUser  ShareType = "user"
	ShareGroup ShareType = "group"
)

// Share is a library shared with a user, directly or through one of its
// groups (Group is empty for direct shares).
type Share struct {
	Name        string
	Description string
	Type        ShareType
	Owner       string
	Group       string
}

// Entities holds every entity mapping of one run.
type Entities struct {
	Users     map[string]*User
	Libraries map[string]Library
	// keyed by group id
	Groups map[string]Group
	Links  map[string]*Link
}
