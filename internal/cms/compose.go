package cms

import (
	"github.com/cran-montage/cranweb/internal/domain"
)

// Section is one rendered about-page slot.
type Section struct {
	ID       int64  `json:"id,string"`
	BlockKey string `json:"block_key"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// AdvantageCard is one "why choose us" card.
type AdvantageCard struct {
	ID      int64  `json:"id,string"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon"`
}

// AboutPage is the fully composed about-page payload.
type AboutPage struct {
	Intro      Section         `json:"intro"`
	Mission    Section         `json:"mission"`
	Stats      CompanyStats    `json:"stats"`
	Advantages []AdvantageCard `json:"advantages"`
}

const (
	defaultIntroTitle   = "История компании"
	defaultIntroContent = "Компания КРАН-МОНТАЖ основана в 2008 году и специализируется на производстве, монтаже и сервисном обслуживании кранового оборудования.\n" +
		"За годы работы мы накопили богатый опыт и экспертизу в сфере грузоподъемного оборудования. Наша команда состоит из высококвалифицированных специалистов.\n" +
		"Сегодня КРАН-МОНТАЖ — это надежный партнер для предприятий различных отраслей промышленности, строительства и логистики."
	defaultIntroImage = "/img/services/0000259150_xzgmnpcd.jpg"

	defaultMissionTitle   = "Наши ценности и приоритеты"
	defaultMissionContent = "Наша миссия — обеспечивать клиентов надежным и эффективным грузоподъемным оборудованием, которое повышает безопасность и производительность их работы."
	defaultMissionImage   = "/img/services/IMG_9370.jpg"

	defaultCardIcon = "FaCertificate"
)

// defaultAdvantages renders when the database holds no advantage rows.
func defaultAdvantages() []AdvantageCard {
	return []AdvantageCard{
		{ID: 1, Title: "Профессионализм", Content: "Опытные специалисты с многолетним стажем работы", Icon: "FaCertificate"},
		{ID: 2, Title: "Комплексный подход", Content: "Полный спектр услуг от проектирования до обслуживания", Icon: "FaAward"},
		{ID: 3, Title: "Техническая поддержка", Content: "Оперативное сервисное обслуживание 24/7", Icon: "FaTools"},
	}
}

func sectionFrom(b *domain.AboutBlock, defTitle, defContent, defImage string) Section {
	s := Section{Title: defTitle, Content: defContent, ImageURL: defImage}
	if b == nil {
		return s
	}
	s.ID = b.ID
	s.BlockKey = b.BlockKey
	if b.Title != "" {
		s.Title = b.Title
	}
	if b.Content != "" {
		s.Content = b.Content
	}
	if b.ImageURL != "" {
		s.ImageURL = b.ImageURL
	}
	return s
}

// ComposeAboutPage assigns each block to exactly one display role and
// fills the fixed layout slots. Blocks must already be filtered to
// active rows and sorted by sort order; for intro/mission/stats the
// first row in that order wins, every remaining row becomes an
// advantage card. Zero blocks yields the full hardcoded default page.
func ComposeAboutPage(blocks []domain.AboutBlock) AboutPage {
	var intro, mission, stats *domain.AboutBlock
	var advRows []domain.AboutBlock

	for i := range blocks {
		b := &blocks[i]
		switch Classify(b) {
		case RoleIntro:
			if intro == nil {
				intro = b
			} else {
				advRows = append(advRows, *b)
			}
		case RoleMission:
			if mission == nil {
				mission = b
			} else {
				advRows = append(advRows, *b)
			}
		case RoleStats:
			if stats == nil {
				stats = b
			} else {
				advRows = append(advRows, *b)
			}
		default:
			// advantage and unclassified both land in the card set
			advRows = append(advRows, *b)
		}
	}

	page := AboutPage{
		Intro:   sectionFrom(intro, defaultIntroTitle, defaultIntroContent, defaultIntroImage),
		Mission: sectionFrom(mission, defaultMissionTitle, defaultMissionContent, defaultMissionImage),
	}

	if stats != nil {
		page.Stats = DecodeCompanyStats(stats.Metadata)
	} else {
		page.Stats = DecodeCompanyStats(nil)
	}

	if len(advRows) == 0 {
		page.Advantages = defaultAdvantages()
		return page
	}
	for _, row := range advRows {
		card := AdvantageCard{ID: row.ID, Title: row.Title, Content: row.Content, Icon: row.Icon}
		if card.Title == "" {
			card.Title = "Преимущество"
		}
		if card.Icon == "" {
			card.Icon = defaultCardIcon
		}
		page.Advantages = append(page.Advantages, card)
	}
	return page
}
