package catalog

import (
	"regexp"
	"strings"

	"i18n-pipeline/internal/textutil"
)

// Category names, in the order categories appear in the persisted catalog
// and its flattened view.
const (
	CategoryNavigation  = "navigation"
	CategoryButtons     = "buttons"
	CategoryForms       = "forms"
	CategoryContact     = "contact"
	CategoryDates       = "dates"
	CategoryCompany     = "company"
	CategoryResearch    = "research"
	CategoryServices    = "services"
	CategoryContentKo   = "content_ko"
	CategoryContentEn   = "content_en"
	CategoryBoilerplate = "boilerplate"
	CategoryOther       = "other"
)

// CategoryOrder fixes catalog iteration order. Categories not listed here
// sort alphabetically after these.
var CategoryOrder = []string{
	CategoryNavigation, CategoryButtons, CategoryForms, CategoryContact,
	CategoryDates, CategoryCompany, CategoryResearch, CategoryServices,
	CategoryContentKo, CategoryContentEn, CategoryBoilerplate, CategoryOther,
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`[\d\-+()]{8,}`)
	yearPattern  = regexp.MustCompile(`\d{4}년`)
	monthPattern = regexp.MustCompile(`\d{2}월`)
)

var addressKeywords = []string{
	"street", "city", "주소", "특별시", "광역시", "빌딩", "층",
}

var navigationUpper = stringSet(
	"ABOUT", "CONTACT", "FAQ", "NEWS", "GALLERY", "WEBZINE", "INQUIRY",
	"DOWNLOAD", "RESEARCH", "HISTORY", "LOCATION", "OVERVIEW", "DEVELOPMENT",
)

var navigationLabels = stringSet(
	"About", "Menu", "Search", "Filter", "Previous", "Next", "Close Search",
	"Skip to main content", "Back to top", "Main Menu", "Navigation Menu",
)

var formLabels = stringSet(
	"Name", "Email", "Phone", "Message", "Subject",
	"성함", "이메일", "전화번호", "내용", "문의유형",
)

var buttonLabels = stringSet(
	"Submit", "Send", "Download", "Search", "View", "More", "See more",
	"More Details", "Play Video", "Share", "Pin", "Love",
	"검색", "문의하기", "View list",
)

var researchKeywords = []string{"연구", "개발", "건강", "의료", "치료", "예방", "진단"}
var companyKeywords = []string{"센터", "본사", "연구소", "회사", "설립"}
var serviceKeywords = []string{"서비스", "제품", "솔루션", "플랫폼", "기술"}

// categoryRule pairs a name with a predicate; the first match in order
// wins, making precedence an explicit, testable artifact.
type categoryRule struct {
	name     string
	category string
	matches  func(text string) bool
}

var categoryRules = []categoryRule{
	{"email", CategoryContact, func(t string) bool {
		return strings.Contains(t, "@") && emailPattern.MatchString(t)
	}},
	{"phone", CategoryContact, func(t string) bool {
		return phonePattern.MatchString(t) && textutil.HasDigit(t)
	}},
	{"address", CategoryContact, func(t string) bool {
		return containsAny(t, addressKeywords)
	}},
	{"date", CategoryDates, func(t string) bool {
		return yearPattern.MatchString(t) || monthPattern.MatchString(t)
	}},
	{"navigation-upper", CategoryNavigation, func(t string) bool {
		return navigationUpper[strings.ToUpper(t)]
	}},
	{"navigation-label", CategoryNavigation, func(t string) bool {
		return navigationLabels[t]
	}},
	{"form-label", CategoryForms, func(t string) bool {
		return formLabels[t]
	}},
	{"button-label", CategoryButtons, func(t string) bool {
		return buttonLabels[t]
	}},
	{"korean-research", CategoryResearch, func(t string) bool {
		return textutil.ContainsHangul(t) && containsAny(t, researchKeywords)
	}},
	{"korean-company", CategoryCompany, func(t string) bool {
		return textutil.ContainsHangul(t) && containsAny(t, companyKeywords)
	}},
	{"korean-services", CategoryServices, func(t string) bool {
		return textutil.ContainsHangul(t) && containsAny(t, serviceKeywords)
	}},
	{"korean-content", CategoryContentKo, func(t string) bool {
		return textutil.ContainsHangul(t)
	}},
}

// Categorize buckets a unique string into a semantic category. Total and
// deterministic: the category is embedded in the persisted key namespace,
// so reruns over unchanged text must always agree.
func Categorize(u *UniqueString) string {
	for _, r := range categoryRules {
		if r.matches(u.Text) {
			return r.category
		}
	}
	return CategoryContentEn
}

// generic categories subject to the frequency-based boilerplate override.
// Exact-rule categories are never overridden by frequency.
var genericCategories = map[string]bool{
	CategoryContentKo: true,
	CategoryContentEn: true,
}

// applyBoilerplate re-buckets a generic-content string present in at least
// ratio of all documents: footer-like text is structural regardless of
// wording.
func applyBoilerplate(category string, u *UniqueString, totalDocs int, ratio float64) string {
	if ratio <= 0 || !genericCategories[category] {
		return category
	}
	if u.DocumentRatio(totalDocs) >= ratio {
		return CategoryBoilerplate
	}
	return category
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func stringSet(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
