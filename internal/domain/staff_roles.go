package domain

// StaffRole enumerates the agency specialties a staff member can hold.
type StaffRole string

const (
	StaffRoleGraphicDesigner    StaffRole = "graphic-designer"
	StaffRoleWebDeveloper       StaffRole = "web-developer"
	StaffRoleContentWriter      StaffRole = "content-writer"
	StaffRoleSocialMediaManager StaffRole = "social-media-manager"
	StaffRoleVideoEditor        StaffRole = "video-editor"
	StaffRoleSEOSpecialist      StaffRole = "seo-specialist"
	StaffRoleProjectManager     StaffRole = "project-manager"
	StaffRoleCopywriter         StaffRole = "copywriter"
	StaffRoleUIUXDesigner       StaffRole = "ui-ux-designer"
	StaffRoleOther              StaffRole = "other"
)

// StaffRoles lists the catalog in display order.
var StaffRoles = []StaffRole{
	StaffRoleGraphicDesigner,
	StaffRoleWebDeveloper,
	StaffRoleContentWriter,
	StaffRoleSocialMediaManager,
	StaffRoleVideoEditor,
	StaffRoleSEOSpecialist,
	StaffRoleProjectManager,
	StaffRoleCopywriter,
	StaffRoleUIUXDesigner,
	StaffRoleOther,
}

var staffRoleLabels = map[StaffRole]string{
	StaffRoleGraphicDesigner:    "Graphic Designer",
	StaffRoleWebDeveloper:       "Web Developer",
	StaffRoleContentWriter:      "Content Writer",
	StaffRoleSocialMediaManager: "Social Media Manager",
	StaffRoleVideoEditor:        "Video Editor",
	StaffRoleSEOSpecialist:      "SEO Specialist",
	StaffRoleProjectManager:     "Project Manager",
	StaffRoleCopywriter:         "Copywriter",
	StaffRoleUIUXDesigner:       "UI/UX Designer",
	StaffRoleOther:              "Other",
}

// Label returns the display string for the specialty, or "Staff" for
// values outside the catalog.
func (r StaffRole) Label() string {
	if label, ok := staffRoleLabels[r]; ok {
		return label
	}
	return "Staff"
}

// ValidStaffRole reports whether the value belongs to the specialty catalog.
func ValidStaffRole(r StaffRole) bool {
	_, ok := staffRoleLabels[r]
	return ok
}
