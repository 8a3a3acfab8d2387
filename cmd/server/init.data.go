package main

import (
	"context"
	"time"

	cmssvc "sparkle_cms/internal/api/cms/service"
	"sparkle_cms/internal/logger"
)

// InitDefaultData provision dữ liệu mặc định cho CMS. Idempotent:
// chạy lại không ghi đè nội dung đã có.
func InitDefaultData(backend *cmssvc.MongoBackend) {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// 1. Provision các section singleton với shape mặc định.
	// Fetch tự tạo bản ghi mặc định khi chưa có, section đã có giữ nguyên.
	log.Info("🔄 [INIT] Step 1: Provisioning default content sections...")
	for _, name := range cmssvc.SectionNames() {
		ref := cmssvc.SectionRef{Kind: cmssvc.KindSection, Key: name}
		if _, err := backend.Fetch(ctx, ref); err != nil {
			log.Fatalf("Failed to provision section %s: %v", name, err)
		}
	}
	log.Info("✅ [INIT] Step 1: Default content sections provisioned")

	// 2. Seed bộ câu hỏi FAQ mặc định khi collection còn trống
	log.Info("🔄 [INIT] Step 2: Seeding default FAQ questions...")
	faqService, err := cmssvc.NewFaqQuestionService()
	if err != nil {
		log.Fatalf("Failed to create FAQ question service: %v", err)
	}
	seeded, err := faqService.Initialize(ctx)
	if err != nil {
		log.Fatalf("Failed to seed FAQ questions: %v", err)
	}
	if seeded > 0 {
		log.Infof("✅ [INIT] Step 2: Seeded %d FAQ questions", seeded)
	} else {
		log.Info("✅ [INIT] Step 2: FAQ questions already present, skipped seeding")
	}
}
