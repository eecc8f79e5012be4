package domain

// RoleConfig is static display metadata for a role.
type RoleConfig struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

var roleCatalog = map[UserRole]RoleConfig{
	RoleDoctor: {
		Title:       "Doctor",
		Description: "Licensed physicians who review patient vitals and run consultations.",
		Features: []string{
			"Patient vitals overview",
			"Consultation scheduling",
			"Care plan notes",
		},
	},
	RoleNutritionist: {
		Title:       "Nutritionist",
		Description: "Diet specialists who build meal plans and track intake goals.",
		Features: []string{
			"Meal plan builder",
			"Calorie and hydration targets",
			"Client progress reports",
		},
	},
	RoleYoga: {
		Title:       "Yoga Instructor",
		Description: "Instructors leading guided yoga and breathing sessions.",
		Features: []string{
			"Class scheduling",
			"Guided session library",
			"Mindfulness tracking",
		},
	},
	RoleTherapist: {
		Title:       "Therapist",
		Description: "Mental health professionals offering counselling sessions.",
		Features: []string{
			"Session booking",
			"Mood and sleep journals",
			"Private session notes",
		},
	},
	RoleFoodPartner: {
		Title:       "Food Partner",
		Description: "Kitchens and restaurants supplying plan-compliant meals.",
		Features: []string{
			"Menu publishing",
			"Order fulfilment",
			"Nutrition labelling",
		},
	},
	RolePatient: {
		Title:       "Patient",
		Description: "Members tracking their own health and working with providers.",
		Features: []string{
			"Personal health dashboard",
			"Activity and sleep tracking",
			"Book providers",
		},
	},
}

// RoleConfigFor returns a copy of the catalog entry for r.
func RoleConfigFor(r UserRole) (RoleConfig, bool) {
	cfg, ok := roleCatalog[r]
	if !ok {
		return RoleConfig{}, false
	}
	cfg.Features = append([]string(nil), cfg.Features...)
	return cfg, true
}

// RoleCatalogEntry pairs a role with its configuration.
type RoleCatalogEntry struct {
	Role   UserRole   `json:"role"`
	Config RoleConfig `json:"config"`
}

// RoleCatalog lists every role configuration in Roles() order.
func RoleCatalog() []RoleCatalogEntry {
	roles := Roles()
	out := make([]RoleCatalogEntry, 0, len(roles))
	for _, r := range roles {
		cfg, _ := RoleConfigFor(r)
		out = append(out, RoleCatalogEntry{Role: r, Config: cfg})
	}
	return out
}
