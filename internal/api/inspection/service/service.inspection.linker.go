// Package inspectionsvc - Nghiệp vụ kiểm tra trưng bày: gom phiên,
// state machine trước/sau và finalize.
package inspectionsvc

import (
	"fmt"
	"sort"

	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
)

// LinkSessions gom các submission thành phiên theo khóa sessionId|storeId.
// Thứ tự trong mỗi danh sách before/after là thứ tự xuất hiện của input.
// Submission thiếu sessionId/storeId hoặc mang submissionType không hợp lệ
// bị bỏ qua và trả về trong danh sách cảnh báo toàn vẹn dữ liệu (đồng thời
// ghi log).
func LinkSessions(subs []inspectionmodels.Submission) (map[string]*inspectionmodels.InspectionSession, []string) {
	return linkByKey(subs, func(sub inspectionmodels.Submission) string {
		return sub.SessionID + "|" + sub.StoreID
	}, false)
}

// LinkSessionsByCategory gom theo khóa sessionId|storeId|categoryId,
// dùng cho export cần độ chi tiết từng ngành hàng.
func LinkSessionsByCategory(subs []inspectionmodels.Submission) (map[string]*inspectionmodels.InspectionSession, []string) {
	return linkByKey(subs, func(sub inspectionmodels.Submission) string {
		return sub.SessionID + "|" + sub.StoreID + "|" + sub.CategoryID
	}, true)
}

func linkByKey(subs []inspectionmodels.Submission, keyOf func(inspectionmodels.Submission) string, withCategory bool) (map[string]*inspectionmodels.InspectionSession, []string) {
	sessions := make(map[string]*inspectionmodels.InspectionSession)
	var warnings []string

	for _, sub := range subs {
		if sub.SessionID == "" || sub.StoreID == "" {
			warning := fmt.Sprintf("bỏ qua submission %s: thiếu sessionId hoặc storeId (sessionId=%q, storeId=%q)",
				sub.ID.Hex(), sub.SessionID, sub.StoreID)
			warnings = append(warnings, warning)
			logger.GetAppLogger().
				WithField("submissionId", sub.ID.Hex()).
				Warn("Dữ liệu submission thiếu khóa phiên, bỏ qua khi gom nhóm")
			continue
		}

		if sub.SubmissionType != inspectionmodels.TypeBefore && sub.SubmissionType != inspectionmodels.TypeAfter {
			warning := fmt.Sprintf("bỏ qua submission %s: submissionType %q không hợp lệ",
				sub.ID.Hex(), sub.SubmissionType)
			warnings = append(warnings, warning)
			logger.GetAppLogger().
				WithField("submissionId", sub.ID.Hex()).
				WithField("submissionType", sub.SubmissionType).
				Warn("Dữ liệu submission có loại không hợp lệ, bỏ qua khi gom nhóm")
			continue
		}

		key := keyOf(sub)
		session, ok := sessions[key]
		if !ok {
			session = &inspectionmodels.InspectionSession{
				SessionID: sub.SessionID,
				StoreID:   sub.StoreID,
				StoreName: sub.StoreName,
				Username:  sub.Username,
			}
			if withCategory {
				session.CategoryID = sub.CategoryID
			}
			sessions[key] = session
		}

		if session.StoreName == "" {
			session.StoreName = sub.StoreName
		}
		if session.SubmittedAt == 0 || (sub.SubmittedAt > 0 && sub.SubmittedAt < session.SubmittedAt) {
			session.SubmittedAt = sub.SubmittedAt
		}

		switch sub.SubmissionType {
		case inspectionmodels.TypeBefore:
			session.Before = append(session.Before, sub)
		case inspectionmodels.TypeAfter:
			session.After = append(session.After, sub)
		}
	}

	return sessions, warnings
}

// SortSessionsByRecency trả về các phiên theo thời điểm nộp mới nhất trước,
// dùng cho màn hình lịch sử.
func SortSessionsByRecency(sessions map[string]*inspectionmodels.InspectionSession) []*inspectionmodels.InspectionSession {
	sorted := make([]*inspectionmodels.InspectionSession, 0, len(sessions))
	for _, session := range sessions {
		sorted = append(sorted, session)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SubmittedAt != sorted[j].SubmittedAt {
			return sorted[i].SubmittedAt > sorted[j].SubmittedAt
		}
		// Khóa phụ để thứ tự ổn định giữa các lần gọi
		if sorted[i].SessionID != sorted[j].SessionID {
			return sorted[i].SessionID < sorted[j].SessionID
		}
		return sorted[i].StoreID < sorted[j].StoreID
	})
	return sorted
}
