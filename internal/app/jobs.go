package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/storage"
)

func (a *Application) initJob() {
	a.sched = cron.New()

	// nightly report of storage objects no database row references
	_, err := a.sched.AddFunc("@daily", a.sweepOrphanMedia)
	if err != nil {
		zap.L().Error("failed to schedule orphan media sweep", zap.Error(err))
	}

	a.sched.Start()
}

// sweepOrphanMedia compares each bucket against the rows that
// reference it. Orphans are only logged; deleting is an operator
// decision.
func (a *Application) sweepOrphanMedia() {
	if a.store == nil {
		return
	}
	start := time.Now()

	var videos []domain.Video
	if err := a.gormDB.Where("video_type = ?", domain.VideoTypeFile).Find(&videos).Error; err != nil {
		zap.L().Error("orphan sweep video query failed", zap.Error(err))
		return
	}
	videoRefs := make(map[string]bool, len(videos))
	for _, v := range videos {
		videoRefs[v.Filename] = true
	}
	a.store.SweepOrphans(storage.BucketVideo, videoRefs)

	var photos []domain.Photo
	if err := a.gormDB.Find(&photos).Error; err != nil {
		zap.L().Error("orphan sweep photo query failed", zap.Error(err))
		return
	}
	imageRefs := make(map[string]bool, len(photos))
	for _, p := range photos {
		imageRefs[p.Filename] = true
	}
	// product images share the bucket with gallery photos
	var products []domain.Product
	if err := a.gormDB.Find(&products).Error; err == nil {
		for _, p := range products {
			if name := storedImageName(p.ImageURL); name != "" {
				imageRefs[name] = true
			}
		}
	}
	a.store.SweepOrphans(storage.BucketImage, imageRefs)

	zap.L().Info("orphan media sweep finished", zap.Duration("took", time.Since(start)))
}
