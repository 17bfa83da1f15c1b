package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cran-montage/cranweb/internal/domain"
)

func TestClassifyKey_KeywordPriority(t *testing.T) {
	cases := []struct {
		key  string
		want SectionRole
	}{
		{"company_intro", RoleIntro},
		{"HISTORY", RoleIntro},
		{"кто мы", RoleIntro},
		{"mission_statement", RoleMission},
		{"Миссия", RoleMission},
		{"stats", RoleStats},
		{"статистика 2024", RoleStats},
		{"advantage_1", RoleAdvantage},
		{"Безопасность", RoleAdvantage},
		{"Индивидуальный подход", RoleAdvantage},
		{"совершенно левый ключ", RoleUnclassified},
		{"", RoleUnclassified},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyKey(c.key), "key %q", c.key)
	}
}

// Ambiguous keys must resolve by list order: intro > mission > stats >
// advantage.
func TestClassifyKey_AmbiguousKeyTieBreak(t *testing.T) {
	// "company" is an intro keyword, "mission" a mission keyword
	assert.Equal(t, RoleIntro, ClassifyKey("company mission"))
	assert.Equal(t, RoleMission, ClassifyKey("миссия и статистика"))
}

// The keyword lists carry no Russian history synonym, so "история
// миссии" matches nothing ("миссии" is not a substring match for
// "миссия") and renders with the advantage cards, exactly as the
// previous site did.
func TestClassifyKey_HistoryOfMissionIsUnclassified(t *testing.T) {
	assert.Equal(t, RoleUnclassified, ClassifyKey("история миссии"))
}

func TestClassify_ExplicitRoleWins(t *testing.T) {
	b := &domain.AboutBlock{BlockKey: "mission", SectionRole: "stats"}
	assert.Equal(t, RoleStats, Classify(b))

	// unknown explicit value falls back to the keyword path
	b = &domain.AboutBlock{BlockKey: "mission", SectionRole: "banner"}
	assert.Equal(t, RoleMission, Classify(b))
}

func TestClassify_EveryBlockGetsExactlyOneRole(t *testing.T) {
	keys := []string{"intro", "mission", "stats", "quality", "whatever", "история миссии", ""}
	for _, k := range keys {
		role := Classify(&domain.AboutBlock{BlockKey: k})
		assert.Contains(t, []SectionRole{
			RoleIntro, RoleMission, RoleStats, RoleAdvantage, RoleUnclassified,
		}, role)
		// deterministic: same input, same answer
		assert.Equal(t, role, Classify(&domain.AboutBlock{BlockKey: k}))
	}
}
