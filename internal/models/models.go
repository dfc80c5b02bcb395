package models

// NavItem is one navigation link as authored in the editor. Show defaults to
// visible when absent.
type NavItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
	Show *bool  `json:"show,omitempty"`
}

// Visible reports whether the item should render: not explicitly hidden, and
// both name and url present.
func (n NavItem) Visible() bool {
	if n.Show != nil && !*n.Show {
		return false
	}
	return n.Name != "" && n.URL != ""
}

// DisplayNavItem is the render projection of a visible NavItem, stripped of
// edit-only fields. Never persisted.
type DisplayNavItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type TemplateCreator struct {
	Name    string `json:"name"`
	YouTube string `json:"youtube"`
	Website string `json:"website"`
	Email   string `json:"email"`
}

type FooterInfo struct {
	ShowFooter         bool            `json:"showFooter"`
	ShowQuickLinks     bool            `json:"showQuickLinks"`
	ShowContactInfo    bool            `json:"showContactInfo"`
	ShowMadeWith       bool            `json:"showMadeWith"`
	ShowTemplateCredit bool            `json:"showTemplateCredit"`
	ShowScrollTop      bool            `json:"showScrollTop"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	QuickLinksTitle    string          `json:"quickLinksTitle"`
	ContactTitle       string          `json:"contactTitle"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	Location           string          `json:"location"`
	Copyright          string          `json:"copyright"`
	MadeWithLocation   string          `json:"madeWithLocation"`
	TemplateCreator    TemplateCreator `json:"templateCreator"`
}

type QuickActionConfig struct {
	HospitalName  string `json:"hospitalName"`
	PhoneDisplay  string `json:"phoneDisplay"`
	PhoneNumber   string `json:"phoneNumber"`
	KakaoURL      string `json:"kakaoUrl"`
	ShowScrollTop bool   `json:"showScrollTop"`
}

type IndexPageData struct {
	Footer        FooterInfo
	FooterVisible bool
	NavItems      []DisplayNavItem
	Quick         QuickActionConfig
	CallNumber    string
	EditMode      bool
}

type AdminPageData struct {
	Footer       FooterInfo
	NavItems     []NavItem
	NavItemsJSON string
	Quick        QuickActionConfig
	EditMode     bool
	Message      string
	Error        string
}
