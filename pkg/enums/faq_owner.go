package enums

// FAQOwnerKind tags which entity a FAQ belongs to. A FAQ has exactly one
// owner; the kind plus a single owner id replaces a row of nullable foreign
// keys so exclusivity holds by construction.
type FAQOwnerKind string

const (
	FAQOwnerService      FAQOwnerKind = "service"
	FAQOwnerBlog         FAQOwnerKind = "blog"
	FAQOwnerLocationPage FAQOwnerKind = "location_page"
)

func (k FAQOwnerKind) String() string {
	return string(k)
}

func (k FAQOwnerKind) IsValid() bool {
	switch k {
	case FAQOwnerService, FAQOwnerBlog, FAQOwnerLocationPage:
		return true
	}
	return false
}
