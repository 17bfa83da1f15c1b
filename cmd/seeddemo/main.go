// Command seeddemo fills an empty database with demo catalog content
// so a fresh install has something to show. Tables that already hold
// rows are left alone.
package main

import (
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/cran-montage/cranweb/config"
	"github.com/cran-montage/cranweb/internal/app"
	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/pkg/common"
)

var conffile = flag.String("c", "cranweb.yml", "config file")

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	db := application.DB()
	seedCategories(db)
	seedProducts(db)
	seedServices(db)
	seedAboutBlocks(db)
	fmt.Println("demo content seeded")
}

func tableEmpty(db *gorm.DB, model interface{}) bool {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	return count == 0
}

func seedCategories(db *gorm.DB) {
	if !tableEmpty(db, &domain.Category{}) {
		return
	}
	for _, name := range []string{"Мостовые краны", "Козловые краны", "Кран-балки", "Комплектующие"} {
		db.Create(&domain.Category{ID: common.UUIDint64(), Name: name})
	}
}

func seedProducts(db *gorm.DB) {
	if !tableEmpty(db, &domain.Product{}) {
		return
	}
	var cat domain.Category
	db.Order("id asc").First(&cat)
	catID := cat.ID
	rows := []domain.Product{
		{
			Title:       "Кран мостовой однобалочный 5 т",
			Description: "Опорный однобалочный кран для цехов и складов.",
			Price:       "по запросу",
			CategoryID:  &catID,
			Characteristics: domain.JSONMap{
				"Грузоподъемность": "5 т",
				"Пролет":           "16.5 м",
			},
		},
		{
			Title:       "Кран мостовой двухбалочный 10 т",
			Description: "Двухбалочный кран с кабиной управления.",
			Price:       "по запросу",
			CategoryID:  &catID,
			Characteristics: domain.JSONMap{
				"Грузоподъемность": "10 т",
				"Пролет":           "22.5 м",
			},
		},
	}
	for i := range rows {
		rows[i].ID = common.UUIDint64()
		db.Create(&rows[i])
	}
}

func seedServices(db *gorm.DB) {
	if !tableEmpty(db, &domain.CmsService{}) {
		return
	}
	rows := []domain.CmsService{
		{Name: "Монтаж кранового оборудования", Description: "Монтаж и пусконаладка кранов любой сложности."},
		{Name: "Ремонт и модернизация", Description: "Капитальный ремонт, замена узлов, модернизация электрики."},
		{Name: "Техническое обслуживание", Description: "Плановое обслуживание и обследование кранов."},
	}
	for i := range rows {
		rows[i].ID = common.UUIDint64()
		db.Create(&rows[i])
	}
}

func seedAboutBlocks(db *gorm.DB) {
	if !tableEmpty(db, &domain.AboutBlock{}) {
		return
	}
	rows := []domain.AboutBlock{
		{
			BlockKey:    "company_intro",
			SectionRole: "intro",
			Title:       "История компании",
			Content:     "Компания работает на рынке грузоподъемного оборудования с 2008 года.",
			Sort:        1,
			IsActive:    true,
		},
		{
			BlockKey:    "mission",
			SectionRole: "mission",
			Title:       "Наши ценности и приоритеты",
			Content:     "Надежность, безопасность и индивидуальный подход к каждому объекту.",
			Sort:        2,
			IsActive:    true,
		},
		{
			BlockKey:    "stats",
			SectionRole: "stats",
			Sort:        3,
			IsActive:    true,
			Metadata: domain.JSONMap{
				"projects":  500,
				"clients":   250,
				"employees": 80,
			},
		},
	}
	for i := range rows {
		rows[i].ID = common.UUIDint64()
		db.Create(&rows[i])
	}
}
