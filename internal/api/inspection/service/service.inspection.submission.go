package inspectionsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	catalogmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/models"
	catalogsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/service"
	inspectiondto "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/dto"
	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/delivery"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
	"github.com/PhuocTran96/store-inspector-sub000/internal/storage"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// SubmitterInfo là thông tin người nộp, lấy từ token của request.
type SubmitterInfo struct {
	UserID   string
	Username string
	TdsName  string
}

// HistoryScope giới hạn phạm vi truy vấn lịch sử phiên.
type HistoryScope struct {
	Username string // Rỗng = mọi user (chỉ admin)
	StoreID  string
	FromMs   int64 // UnixMilli, 0 = không giới hạn
	ToMs     int64
	Page     int64
	Limit    int64
}

// SubmissionService xử lý finalize, lịch sử và xóa submission.
type SubmissionService struct {
	*basesvc.BaseServiceMongoImpl[inspectionmodels.Submission]
	storeSvc *catalogsvc.StoreService
	queue    *delivery.Queue
}

// NewSubmissionService tạo SubmissionService mới.
func NewSubmissionService() (*SubmissionService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Submissions)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Submissions, common.ErrNotFound)
	}

	storeSvc, err := catalogsvc.NewStoreService()
	if err != nil {
		return nil, err
	}
	queue, err := delivery.NewQueue()
	if err != nil {
		return nil, err
	}

	return &SubmissionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[inspectionmodels.Submission](coll),
		storeSvc:             storeSvc,
		queue:                queue,
	}, nil
}

// Finalize ghi bền vững cả hai pha của một phiên.
//
// Toàn bộ input được đưa qua state machine SessionDraft để kiểm tra đúng
// giao thức trước/sau, rồi ghi tập before trước, tập after sau (thông báo
// chưa-khắc-phục cần ảnh before). Index unique trên
// (sessionId, storeId, categoryId, submissionType) chặn finalize trùng:
// lần gọi thứ hai nhận ErrDuplicate, không ghi đôi.
func (s *SubmissionService) Finalize(ctx context.Context, submitter SubmitterInfo, input *inspectiondto.FinalizeInput) (*inspectiondto.FinalizeResult, error) {
	// Cửa hàng không tồn tại thì từ chối toàn bộ phiên
	store, err := s.storeSvc.FindByStoreCode(ctx, input.StoreID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeBusinessNotFound,
			fmt.Sprintf("Không tìm thấy cửa hàng %s", input.StoreID),
			common.StatusNotFound, nil)
	}

	// Token không mang tên TDS; lấy từ cửa hàng để submission lưu đủ
	// thông tin phi chuẩn hóa cho báo cáo và thông báo
	submitter = enrichSubmitter(submitter, store)

	draft := NewSessionDraft(input.SessionID, input.StoreID)

	for _, entry := range input.Before {
		if _, err := draft.CaptureBefore(toCategoryEntry(entry)); err != nil {
			return nil, err
		}
	}

	afterIDs := make([]string, 0, len(input.After))
	for _, entry := range input.After {
		afterIDs = append(afterIDs, entry.CategoryID)
	}
	if err := draft.SelectAfterCategories(afterIDs); err != nil {
		return nil, err
	}
	for _, entry := range input.After {
		if err := draft.CaptureAfter(toAfterCategoryEntry(entry)); err != nil {
			return nil, err
		}
	}

	if err := draft.Finalize(); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	beforeDocs := s.toSubmissions(draft.Before(), inspectionmodels.TypeBefore, submitter, store.StoreCode, store.StoreName, input.SessionID, now)
	afterDocs := s.toSubmissions(draft.After(), inspectionmodels.TypeAfter, submitter, store.StoreCode, store.StoreName, input.SessionID, now)

	// Ghi tập before trước; tập after chỉ được ghi khi before thành công
	if _, err := s.InsertMany(ctx, beforeDocs); err != nil {
		return nil, err
	}
	if _, err := s.InsertMany(ctx, afterDocs); err != nil {
		return nil, err
	}

	imagesPersisted := 0
	for _, doc := range beforeDocs {
		imagesPersisted += len(doc.Images)
	}
	for _, doc := range afterDocs {
		imagesPersisted += len(doc.Images)
	}

	// Thông báo chưa-khắc-phục: fire-and-forget, lỗi enqueue chỉ ghi log
	unfixedCount := s.notifyUnfixed(ctx, submitter, store.StoreName, input.SessionID, beforeDocs, afterDocs)

	logger.GetAppLogger().
		WithField("sessionId", input.SessionID).
		WithField("storeId", store.StoreCode).
		WithField("username", submitter.Username).
		WithField("images", imagesPersisted).
		Info("Đã finalize phiên kiểm tra")

	return &inspectiondto.FinalizeResult{
		SessionID:       input.SessionID,
		StoreID:         store.StoreCode,
		ImagesPersisted: imagesPersisted,
		UnfixedCount:    unfixedCount,
	}, nil
}

// enrichSubmitter bổ sung tên TDS phụ trách từ cửa hàng khi token
// không mang sẵn thông tin này.
func enrichSubmitter(submitter SubmitterInfo, store catalogmodels.Store) SubmitterInfo {
	if submitter.TdsName == "" {
		submitter.TdsName = store.TdsName
	}
	return submitter
}

// notifyUnfixed enqueue một thông báo Telegram cho mỗi ngành hàng báo
// chưa khắc phục, kèm ảnh before của ngành hàng đó. Trả về số ngành hàng
// chưa khắc phục.
func (s *SubmissionService) notifyUnfixed(ctx context.Context, submitter SubmitterInfo, storeName, sessionID string, beforeDocs, afterDocs []inspectionmodels.Submission) int {
	beforeImages := make(map[string][]string, len(beforeDocs))
	for _, doc := range beforeDocs {
		beforeImages[doc.CategoryID] = doc.Images
	}

	unfixedCount := 0
	for _, doc := range afterDocs {
		if doc.Fixed.State != inspectionmodels.FixNotDone {
			continue
		}
		unfixedCount++

		item := delivery.QueueItem{
			Channel: delivery.ChannelTelegram,
			Body:    buildUnfixedMessage(submitter, storeName, doc, beforeImages[doc.CategoryID]),
			Meta: map[string]interface{}{
				"sessionId":  sessionID,
				"storeId":    doc.StoreID,
				"categoryId": doc.CategoryID,
			},
		}
		if err := s.queue.Enqueue(ctx, item); err != nil {
			logger.GetErrorLogger().WithError(err).
				WithField("categoryId", doc.CategoryID).
				Error("Không thể enqueue thông báo chưa khắc phục")
		}
	}
	return unfixedCount
}

// buildUnfixedMessage dựng nội dung HTML của thông báo chưa khắc phục.
func buildUnfixedMessage(submitter SubmitterInfo, storeName string, doc inspectionmodels.Submission, beforeImages []string) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>Lỗi trưng bày chưa khắc phục</b>\n")
	fmt.Fprintf(&b, "Cửa hàng: %s (%s)\n", storeName, doc.StoreID)
	fmt.Fprintf(&b, "Ngành hàng: %s\n", doc.CategoryName)
	fmt.Fprintf(&b, "Nhân viên: %s", submitter.Username)
	if submitter.TdsName != "" {
		fmt.Fprintf(&b, " (TDS: %s)", submitter.TdsName)
	}
	b.WriteString("\n")
	if doc.Fixed.Note != "" {
		fmt.Fprintf(&b, "Ghi chú: %s\n", doc.Fixed.Note)
	}
	if doc.Fixed.ExpectedResolutionDate > 0 {
		fmt.Fprintf(&b, "Dự kiến xử lý: %s\n", utility.UnixMilli2Time(doc.Fixed.ExpectedResolutionDate).Format("02/01/2006"))
	}
	if len(beforeImages) > 0 {
		b.WriteString("Ảnh hiện trạng:\n")
		for _, url := range beforeImages {
			b.WriteString(url)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// toSubmissions chuyển các CategoryEntry của một pha thành document.
func (s *SubmissionService) toSubmissions(entries []CategoryEntry, submissionType string, submitter SubmitterInfo, storeCode, storeName, sessionID string, submittedAt int64) []inspectionmodels.Submission {
	docs := make([]inspectionmodels.Submission, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, inspectionmodels.Submission{
			Username:       submitter.Username,
			UserID:         utility.String2ObjectID(submitter.UserID),
			TdsName:        submitter.TdsName,
			StoreID:        storeCode,
			StoreName:      storeName,
			CategoryID:     entry.CategoryID,
			CategoryName:   entry.CategoryName,
			Note:           entry.Note,
			Fixed:          entry.Fixed,
			Images:         entry.Images,
			SubmissionType: submissionType,
			SessionID:      sessionID,
			SubmittedAt:    submittedAt,
		})
	}
	return docs
}

func toCategoryEntry(input inspectiondto.FinalizeCategoryInput) CategoryEntry {
	return CategoryEntry{
		CategoryID:   input.CategoryID,
		CategoryName: input.CategoryName,
		Images:       input.Images,
		Note:         input.Note,
	}
}

func toAfterCategoryEntry(input inspectiondto.FinalizeAfterCategoryInput) CategoryEntry {
	return CategoryEntry{
		CategoryID:   input.CategoryID,
		CategoryName: input.CategoryName,
		Images:       input.Images,
		Note:         input.Note,
		Fixed: inspectionmodels.FixStatus{
			State:                  inspectionmodels.FixState(input.Fixed),
			Note:                   input.FixNote,
			ExpectedResolutionDate: input.ExpectedResolutionDate,
		},
	}
}

// FindHistory trả về các phiên đã finalize trong phạm vi cho trước,
// mới nhất trước, phân trang theo phiên.
func (s *SubmissionService) FindHistory(ctx context.Context, scope HistoryScope) ([]*inspectionmodels.InspectionSession, []string, error) {
	filter := bson.M{}
	if scope.Username != "" {
		filter["username"] = strings.ToLower(scope.Username)
	}
	if scope.StoreID != "" {
		filter["storeId"] = scope.StoreID
	}
	if scope.FromMs > 0 || scope.ToMs > 0 {
		dateRange := bson.M{}
		if scope.FromMs > 0 {
			dateRange["$gte"] = scope.FromMs
		}
		if scope.ToMs > 0 {
			dateRange["$lt"] = scope.ToMs
		}
		filter["submittedAt"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	subs, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, err
	}

	sessions, warnings := LinkSessions(subs)
	sorted := SortSessionsByRecency(sessions)

	// Phân trang theo phiên (một phiên gồm nhiều submission)
	page, limit := scope.Page, scope.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= int64(len(sorted)) {
		return []*inspectionmodels.InspectionSession{}, warnings, nil
	}
	end := start + limit
	if end > int64(len(sorted)) {
		end = int64(len(sorted))
	}
	return sorted[start:end], warnings, nil
}

// FindBeforeCategories trả về các ngành hàng đủ điều kiện cho pha after
// của một phiên: các ngành hàng before có ảnh hoặc ghi chú.
func (s *SubmissionService) FindBeforeCategories(ctx context.Context, sessionID, storeID string) ([]inspectiondto.BeforeCategoryInfo, error) {
	subs, err := s.Find(ctx, bson.M{
		"sessionId":      sessionID,
		"storeId":        storeID,
		"submissionType": inspectionmodels.TypeBefore,
	}, nil)
	if err != nil {
		return nil, err
	}

	var categories []inspectiondto.BeforeCategoryInfo
	seen := make(map[string]bool)
	for _, sub := range subs {
		if !sub.HasContent() || seen[sub.CategoryID] {
			continue
		}
		seen[sub.CategoryID] = true
		categories = append(categories, inspectiondto.BeforeCategoryInfo{
			CategoryID:   sub.CategoryID,
			CategoryName: sub.CategoryName,
			ImageCount:   len(sub.Images),
			Note:         sub.Note,
		})
	}
	return categories, nil
}

// DeleteWithImages xóa các submission thỏa filter (admin) và xóa ảnh
// liên quan khỏi object store. Xóa ảnh là best-effort: lỗi chỉ ghi log,
// không chặn và không hoàn tác việc xóa bản ghi.
func (s *SubmissionService) DeleteWithImages(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, common.NewError(common.ErrCodeValidationInput, "Danh sách id rỗng", common.StatusBadRequest, nil)
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	subs, err := s.Find(ctx, filter, nil)
	if err != nil {
		return 0, err
	}

	var imageURLs []string
	for _, sub := range subs {
		imageURLs = append(imageURLs, sub.Images...)
	}

	deleted, err := s.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	if len(imageURLs) > 0 {
		go s.deleteImagesBestEffort(imageURLs)
	}

	return deleted, nil
}

// deleteImagesBestEffort xóa ảnh khỏi object store, nuốt mọi lỗi.
func (s *SubmissionService) deleteImagesBestEffort(urls []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithField("panic", r).Error("Panic khi xóa ảnh")
		}
	}()

	store, err := storage.GetInstance(global.ServerConfig)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Bỏ qua xóa ảnh: object store chưa cấu hình")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, url := range urls {
		// Lỗi đã được ghi log bên trong DeleteImage
		_ = store.DeleteImage(ctx, url)
	}
}
