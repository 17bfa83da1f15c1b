package cms

import (
	"strings"

	"github.com/cran-montage/cranweb/internal/domain"
)

// SectionRole is the logical about-page slot a content block renders
// into. Blocks carry the role explicitly in the section_role column;
// rows migrated from older data may leave it blank and are classified
// from the block key instead.
type SectionRole string

const (
	RoleIntro        SectionRole = "intro"
	RoleMission      SectionRole = "mission"
	RoleStats        SectionRole = "stats"
	RoleAdvantage    SectionRole = "advantage"
	RoleUnclassified SectionRole = "unclassified"
)

// Keyword lists for legacy block keys, matched as case-folded
// substrings. Carried over verbatim from the previous site data,
// including the Russian synonyms operators actually typed.
var (
	introKeywords     = []string{"history", "company_intro", "about", "intro", "company", "кто мы"}
	missionKeywords   = []string{"mission", "миссия", "mission_statement"}
	statsKeywords     = []string{"stats", "statistics", "статистика", "numbers"}
	advantageKeywords = []string{
		"advantage", "quality", "safety", "support", "преимущество",
		"качество", "безопасность", "individual", "индивидуальный подход",
	}
)

type rolePredicate struct {
	role     SectionRole
	keywords []string
}

// rolePredicates is evaluated in order; the first matching list wins.
// The intro > mission > stats > advantage priority is load bearing:
// legacy keys such as "company mission" match more than one list and
// existing pages depend on the historical tie-break.
var rolePredicates = []rolePredicate{
	{RoleIntro, introKeywords},
	{RoleMission, missionKeywords},
	{RoleStats, statsKeywords},
	{RoleAdvantage, advantageKeywords},
}

func matchAny(key string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// ClassifyKey maps a legacy block key to a section role using the
// ordered keyword lists. Keys matching no list are RoleUnclassified;
// page composition groups those with the advantage cards so untagged
// rows keep rendering where they always did.
func ClassifyKey(blockKey string) SectionRole {
	key := strings.ToLower(strings.TrimSpace(blockKey))
	for _, p := range rolePredicates {
		if matchAny(key, p.keywords) {
			return p.role
		}
	}
	return RoleUnclassified
}

// ValidRole reports whether s is one of the storable section roles.
func ValidRole(s string) bool {
	switch SectionRole(s) {
	case RoleIntro, RoleMission, RoleStats, RoleAdvantage, RoleUnclassified:
		return true
	}
	return false
}

// Classify returns the role for a block: the stored section_role when
// set, otherwise the keyword fallback on the block key.
func Classify(block *domain.AboutBlock) SectionRole {
	switch SectionRole(strings.ToLower(strings.TrimSpace(block.SectionRole))) {
	case RoleIntro:
		return RoleIntro
	case RoleMission:
		return RoleMission
	case RoleStats:
		return RoleStats
	case RoleAdvantage:
		return RoleAdvantage
	}
	return ClassifyKey(block.BlockKey)
}
