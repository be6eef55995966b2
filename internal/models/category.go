package models

// ApplicantCategory is the applicant type selected on the first registration
// step. It governs which fields are required, which profile subtype is
// attached at submission and which role the account is given.
type ApplicantCategory string

const (
	CategoryIndividualTenant    ApplicantCategory = "individual-tenant"
	CategoryCooperative         ApplicantCategory = "cooperative"
	CategoryAgribusiness        ApplicantCategory = "agribusiness"
	CategoryResearchInstitution ApplicantCategory = "research-institution"
	CategoryMunicipal           ApplicantCategory = "municipal"
	CategoryRegional            ApplicantCategory = "regional"
	CategoryNational            ApplicantCategory = "national"
	CategorySuperAdmin          ApplicantCategory = "super-admin"
)

// AllCategories lists every applicant category in declaration order.
var AllCategories = []ApplicantCategory{
	CategoryIndividualTenant,
	CategoryCooperative,
	CategoryAgribusiness,
	CategoryResearchInstitution,
	CategoryMunicipal,
	CategoryRegional,
	CategoryNational,
	CategorySuperAdmin,
}

// Valid reports whether the category is one of the known applicant types.
func (c ApplicantCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Role returns the account role assigned at registration. Staff tiers map to
// their own role; every applicant-facing category maps to "user".
func (c ApplicantCategory) Role() string {
	switch c {
	case CategoryMunicipal:
		return "municipal"
	case CategoryRegional:
		return "regional"
	case CategoryNational:
		return "national"
	case CategorySuperAdmin:
		return "super-admin"
	default:
		return "user"
	}
}

// RedirectRoute returns the post-registration landing route for the category.
func (c ApplicantCategory) RedirectRoute() string {
	switch c {
	case CategoryMunicipal:
		return "/municipal/dashboard"
	case CategoryRegional:
		return "/regional/dashboard"
	case CategoryNational:
		return "/national/dashboard"
	case CategorySuperAdmin:
		return "/super-admin/dashboard"
	default:
		return "/approval-status"
	}
}
