package site

import (
	"github.com/IAMC-DH/my-site-template/internal/config"
	"github.com/IAMC-DH/my-site-template/internal/models"
)

// footerProtectedFields may never be changed through the store or the editor;
// they carry the template attribution.
var footerProtectedFields = []string{
	"showMadeWith",
	"madeWithLocation",
	"showTemplateCredit",
	"templateCreator",
}

func defaultFooterInfo() config.Object {
	return config.Object{
		"showFooter":         true,
		"showQuickLinks":     true,
		"showContactInfo":    true,
		"showMadeWith":       true,
		"showTemplateCredit": true,
		"showScrollTop":      true,
		"name":               "우리동네의원",
		"description":        "정성을 다해 진료하는 동네 주치의입니다.",
		"quickLinksTitle":    "바로가기",
		"contactTitle":       "진료 안내",
		"phone":              "02) 887-1575",
		"email":              "hello@example.com",
		"location":           "서울특별시 관악구",
		"copyright":          "© 우리동네의원. All rights reserved.",
		"madeWithLocation":   "Seoul",
		"templateCreator": map[string]any{
			"name":    "IAMC-DH",
			"youtube": "https://www.youtube.com/@IAMC-DH",
			"website": "https://github.com/IAMC-DH",
			"email":   "iamc.dh.dev@gmail.com",
		},
	}
}

func defaultNavConfig() config.Object {
	return config.Object{
		"items": []any{
			map[string]any{"name": "홈", "url": "/"},
			map[string]any{"name": "진료안내", "url": "#services"},
			map[string]any{"name": "오시는길", "url": "#location"},
			map[string]any{"name": "상담문의", "url": "#contact"},
		},
	}
}

// fallbackNavItems renders when no authored item survives the visibility
// filter, so the navigation block is never empty.
func fallbackNavItems() []models.DisplayNavItem {
	return []models.DisplayNavItem{
		{Name: "홈", URL: "/"},
		{Name: "진료안내", URL: "#services"},
		{Name: "오시는길", URL: "#location"},
	}
}

func defaultQuickActions() config.Object {
	return config.Object{
		"hospitalName":  "우리동네의원",
		"phoneDisplay":  "02) 887-1575",
		"phoneNumber":   "028871575",
		"kakaoUrl":      "https://pf.kakao.com/_xexample",
		"showScrollTop": true,
	}
}

func footerPolicy() config.Policy {
	return config.Policy{
		Key:      KeyFooterInfo,
		Defaults: defaultFooterInfo(),
		Locked:   footerProtectedFields,
	}
}

func navPolicy() config.Policy {
	return config.Policy{
		Key:      KeyNavConfig,
		Defaults: defaultNavConfig(),
	}
}

func quickActionsPolicy() config.Policy {
	return config.Policy{
		Key:      KeyQuickActions,
		Defaults: defaultQuickActions(),
	}
}
