package cmssvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	cmsmodels "sparkle_cms/internal/api/cms/models"
)

func faqQuestion(question string, createdAt int64) cmsmodels.FaqQuestion {
	return cmsmodels.FaqQuestion{
		ID:        primitive.NewObjectID(),
		Question:  question,
		Answer:    "answer",
		CreatedAt: createdAt,
	}
}

func TestSelectDuplicates(t *testing.T) {
	oldest := faqQuestion("How do I book a cleaning?", 100)
	newer := faqQuestion("how do i  book a cleaning?", 200)
	newest := faqQuestion("HOW DO I BOOK A CLEANING?", 300)
	unique := faqQuestion("Do you clean windows?", 150)

	// Thứ tự input không quyết định bản được giữ: luôn là createdAt sớm nhất
	duplicates := selectDuplicates([]cmsmodels.FaqQuestion{newer, oldest, newest, unique})

	require.Len(t, duplicates, 2)
	assert.Contains(t, duplicates, newer.ID)
	assert.Contains(t, duplicates, newest.ID)
	assert.NotContains(t, duplicates, oldest.ID)
	assert.NotContains(t, duplicates, unique.ID)
}

func TestAppendUnseenDedupsOverlappingPages(t *testing.T) {
	first := faqQuestion("A?", 1)
	shared := faqQuestion("B?", 2)
	last := faqQuestion("C?", 3)

	seen := make(map[primitive.ObjectID]struct{})
	var all []cmsmodels.FaqQuestion

	// Bản ghi shared xuất hiện trên cả hai trang (bản ghi dịch trang giữa
	// hai lần đọc): danh sách gom chỉ được chứa nó đúng một lần
	all = appendUnseen(all, seen, []cmsmodels.FaqQuestion{first, shared})
	all = appendUnseen(all, seen, []cmsmodels.FaqQuestion{shared, last})

	require.Len(t, all, 3)
	var sharedCount int
	for _, q := range all {
		if q.ID == shared.ID {
			sharedCount++
		}
	}
	assert.Equal(t, 1, sharedCount)

	// Thứ tự gặp lần đầu được giữ nguyên
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, shared.ID, all[1].ID)
	assert.Equal(t, last.ID, all[2].ID)
}

func TestSelectDuplicatesNoDuplicates(t *testing.T) {
	list := []cmsmodels.FaqQuestion{
		faqQuestion("A?", 1),
		faqQuestion("B?", 2),
	}
	assert.Empty(t, selectDuplicates(list))
}

func TestNormalizeQuestion(t *testing.T) {
	// Hoa thường và whitespace không tạo khác biệt
	assert.Equal(t,
		normalizeQuestion("How do I book a cleaning?"),
		normalizeQuestion("  HOW DO   I BOOK A CLEANING?  "))

	assert.Equal(t, "do you clean windows?", normalizeQuestion("Do  you\tclean\nwindows?"))

	// Nội dung khác nhau thật sự vẫn phân biệt
	assert.NotEqual(t,
		normalizeQuestion("Do you clean windows?"),
		normalizeQuestion("Do you clean carpets?"))
}

func TestRegexEscape(t *testing.T) {
	assert.Equal(t, `how\?`, regexEscape("how?"))
	assert.Equal(t, `a\.b\*c`, regexEscape("a.b*c"))
	assert.Equal(t, `\(giá\)`, regexEscape("(giá)"))
	assert.Equal(t, "binh thuong", regexEscape("binh thuong"))
}

func TestDefaultFaqQuestions(t *testing.T) {
	questions := defaultFaqQuestions()
	require.NotEmpty(t, questions)

	// Bộ seed không được chứa câu hỏi trùng theo chuẩn hóa cleanup
	seen := make(map[string]bool)
	for _, q := range questions {
		assert.NotEmpty(t, q.Question)
		assert.NotEmpty(t, q.Answer)
		assert.NotEmpty(t, q.Category)
		assert.True(t, q.IsActive)

		key := normalizeQuestion(q.Question)
		assert.False(t, seen[key], "câu hỏi seed trùng lặp: %s", q.Question)
		seen[key] = true
	}
}
