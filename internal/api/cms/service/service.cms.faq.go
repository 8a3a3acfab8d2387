package cmssvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "sparkle_cms/internal/api/base/models"
	basesvc "sparkle_cms/internal/api/base/service"
	cmsmodels "sparkle_cms/internal/api/cms/models"
	"sparkle_cms/internal/common"
	"sparkle_cms/internal/global"
)

// FaqQuestionService quản lý câu hỏi FAQ: CRUD, seed dữ liệu ban đầu
// và dọn trùng lặp.
type FaqQuestionService struct {
	*basesvc.BaseServiceMongoImpl[cmsmodels.FaqQuestion]
}

// NewFaqQuestionService tạo FaqQuestionService từ collection đã đăng ký.
func NewFaqQuestionService() (*FaqQuestionService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CmsFaqQuestions)
	if !exist {
		return nil, fmt.Errorf("failed to get cms_faq_questions collection: %v", common.ErrNotFound)
	}
	return &FaqQuestionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[cmsmodels.FaqQuestion](col),
	}, nil
}

// collectPageSize là số bản ghi mỗi lần đọc khi gom toàn bộ collection.
const collectPageSize int64 = 100

// FindPaginated tìm câu hỏi FAQ theo trang với filter tùy chọn.
// search match không phân biệt hoa thường trên question và answer.
func (s *FaqQuestionService) FindPaginated(ctx context.Context, page, limit int64, search, category string, activeOnly bool) (*basemodels.PaginateResult[cmsmodels.FaqQuestion], error) {
	filter := bson.M{}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexEscape(search), Options: "i"}
		filter["$or"] = []bson.M{
			{"question": pattern},
			{"answer": pattern},
		}
	}
	if category != "" {
		filter["category"] = category
	}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: -1},
		{Key: "createdAt", Value: 1},
	})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Initialize seed bộ câu hỏi mặc định khi collection còn trống.
// Idempotent: collection đã có dữ liệu thì không làm gì.
func (s *FaqQuestionService) Initialize(ctx context.Context) (int64, error) {
	total, err := s.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	seeded, err := s.InsertMany(ctx, defaultFaqQuestions())
	if err != nil {
		return 0, err
	}
	logrus.WithField("count", len(seeded)).Info("✅ Đã seed câu hỏi FAQ mặc định")
	return int64(len(seeded)), nil
}

// FaqCleanupResult là kết quả một lần dọn câu hỏi trùng lặp.
type FaqCleanupResult struct {
	Removed   int64 `json:"removed"`
	Remaining int64 `json:"remaining"`
}

// Cleanup xóa các câu hỏi trùng lặp. Hai câu hỏi coi là trùng khi nội dung
// question giống nhau sau khi hạ hoa thường và nén whitespace; mỗi nhóm trùng
// giữ lại bản ghi có createdAt sớm nhất.
func (s *FaqQuestionService) Cleanup(ctx context.Context) (*FaqCleanupResult, error) {
	all, err := s.CollectAll(ctx)
	if err != nil {
		return nil, err
	}

	duplicates := selectDuplicates(all)

	var removed int64
	for _, id := range duplicates {
		if err := s.DeleteById(ctx, id); err != nil {
			logrus.WithField("id", id.Hex()).WithError(err).Warn("❌ Không xóa được câu hỏi trùng lặp")
			continue
		}
		removed++
	}

	result := &FaqCleanupResult{
		Removed:   removed,
		Remaining: int64(len(all)) - removed,
	}
	logrus.WithFields(logrus.Fields{
		"removed":   result.Removed,
		"remaining": result.Remaining,
	}).Info("🧹 Đã dọn câu hỏi FAQ trùng lặp")
	return result, nil
}

// CollectAll gom toàn bộ câu hỏi qua từng trang, dedup theo id phòng trường hợp
// bản ghi dịch trang giữa hai lần đọc.
func (s *FaqQuestionService) CollectAll(ctx context.Context) ([]cmsmodels.FaqQuestion, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var all []cmsmodels.FaqQuestion

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	for page := int64(1); ; page++ {
		result, err := s.FindWithPagination(ctx, bson.M{}, page, collectPageSize, opts)
		if err != nil {
			return nil, err
		}
		all = appendUnseen(all, seen, result.Items)
		if !result.HasMore() {
			break
		}
	}
	return all, nil
}

// appendUnseen gom các câu hỏi chưa gặp theo id vào danh sách tích lũy.
// Hai trang đọc kế tiếp có thể chồng lấn khi bản ghi dịch trang giữa hai
// lần đọc; mỗi id chỉ được nhận một lần.
func appendUnseen(all []cmsmodels.FaqQuestion, seen map[primitive.ObjectID]struct{}, page []cmsmodels.FaqQuestion) []cmsmodels.FaqQuestion {
	for _, q := range page {
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}
		all = append(all, q)
	}
	return all
}

// selectDuplicates nhóm câu hỏi theo nội dung chuẩn hóa và trả về id các bản
// ghi thừa, giữ lại bản ghi có createdAt sớm nhất mỗi nhóm.
func selectDuplicates(all []cmsmodels.FaqQuestion) []primitive.ObjectID {
	keepers := make(map[string]cmsmodels.FaqQuestion)
	var duplicates []primitive.ObjectID
	for _, q := range all {
		key := normalizeQuestion(q.Question)
		keeper, seen := keepers[key]
		if !seen {
			keepers[key] = q
			continue
		}
		if q.CreatedAt < keeper.CreatedAt {
			duplicates = append(duplicates, keeper.ID)
			keepers[key] = q
		} else {
			duplicates = append(duplicates, q.ID)
		}
	}
	return duplicates
}

// normalizeQuestion chuẩn hóa nội dung câu hỏi để so trùng:
// hạ hoa thường, nén mọi chuỗi whitespace về một khoảng trắng.
func normalizeQuestion(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// regexEscape escape các ký tự đặc biệt của regex trong chuỗi tìm kiếm.
func regexEscape(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// defaultFaqQuestions là bộ câu hỏi seed cho website dịch vụ vệ sinh.
func defaultFaqQuestions() []cmsmodels.FaqQuestion {
	return []cmsmodels.FaqQuestion{
		{
			Question: "How do I book a cleaning?",
			Answer:   "You can book online through our booking page or call us directly. Pick a date, choose the service you need and we will confirm within a few hours.",
			Category: "booking",
			Tags:     []string{"booking", "getting-started"},
			Priority: 10,
			IsActive: true,
		},
		{
			Question: "Do I need to provide cleaning supplies?",
			Answer:   "No, our teams bring all equipment and eco-friendly products. If you prefer us to use your own supplies, just let us know in the booking notes.",
			Category: "service",
			Tags:     []string{"supplies"},
			Priority: 9,
			IsActive: true,
		},
		{
			Question: "What areas do you cover?",
			Answer:   "We cover the whole metropolitan area and surrounding suburbs. Check the locations page for the full list of areas we serve.",
			Category: "coverage",
			Tags:     []string{"locations"},
			Priority: 8,
			IsActive: true,
		},
		{
			Question: "How much does a standard clean cost?",
			Answer:   "Pricing depends on the size of your home and the type of service. A standard clean starts from the price listed on each service page, and we always confirm the quote before work begins.",
			Category: "pricing",
			Tags:     []string{"pricing"},
			Priority: 7,
			IsActive: true,
		},
		{
			Question: "Can I reschedule or cancel a booking?",
			Answer:   "Yes, you can reschedule or cancel free of charge up to 24 hours before the appointment. Inside 24 hours a small fee may apply.",
			Category: "booking",
			Tags:     []string{"booking", "cancellation"},
			Priority: 6,
			IsActive: true,
		},
		{
			Question: "Are your cleaners insured?",
			Answer:   "All our cleaners are fully insured and background checked. Your home and belongings are covered while we work.",
			Category: "trust",
			Tags:     []string{"insurance", "trust"},
			Priority: 5,
			IsActive: true,
		},
		{
			Question: "Do you offer end of lease cleaning?",
			Answer:   "Yes, end of lease cleaning is one of our most popular services and comes with a bond back guarantee. See the service page for what is included.",
			Category: "service",
			Tags:     []string{"end-of-lease"},
			Priority: 4,
			IsActive: true,
		},
		{
			Question: "Do I need to be home during the clean?",
			Answer:   "No, many customers give us access instructions and go about their day. We lock up and follow your instructions exactly when we leave.",
			Category: "service",
			Tags:     []string{"access"},
			Priority: 3,
			IsActive: true,
		},
	}
}
