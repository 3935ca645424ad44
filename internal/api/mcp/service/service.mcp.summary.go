package mcpsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	mcpmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// UserComplianceResult là kết quả đối chiếu tuân thủ của một user
// trong một tháng.
type UserComplianceResult struct {
	Username     string `json:"username"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Status       string `json:"status"` // Yes / No
	Total        int    `json:"total"`
	Compliant    int    `json:"compliant"`
	NonCompliant int    `json:"nonCompliant"`
}

// MonthlySummaryResult gộp ba góc nhìn tổng hợp tháng: tất cả submission,
// chỉ tập tuân thủ và chỉ tập không tuân thủ.
type MonthlySummaryResult struct {
	Year         int                 `json:"year"`
	Month        int                 `json:"month"`
	All          []MonthlySummaryRow `json:"all"`
	Compliant    []MonthlySummaryRow `json:"compliant"`
	NonCompliant []MonthlySummaryRow `json:"nonCompliant"`
}

// ComplianceService đối chiếu submission thực tế với kế hoạch viếng thăm.
type ComplianceService struct {
	plans *VisitPlanService
	subs  *basesvc.BaseServiceMongoImpl[inspectionmodels.Submission]
}

// NewComplianceService tạo ComplianceService mới.
func NewComplianceService() (*ComplianceService, error) {
	planSvc, err := NewVisitPlanService()
	if err != nil {
		return nil, err
	}
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Submissions)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Submissions, common.ErrNotFound)
	}
	return &ComplianceService{
		plans: planSvc,
		subs:  basesvc.NewBaseServiceMongo[inspectionmodels.Submission](coll),
	}, nil
}

// Plans trả về service kế hoạch bên dưới.
func (s *ComplianceService) Plans() *VisitPlanService { return s.plans }

// FetchMonth tải kế hoạch và submission của một tháng. Submission lọc
// theo submittedAt trong [đầu tháng, đầu tháng sau) UTC.
func (s *ComplianceService) FetchMonth(ctx context.Context, year int, month time.Month) ([]mcpmodels.VisitPlanEntry, []inspectionmodels.Submission, error) {
	plans, err := s.plans.FindForMonth(ctx, year, month)
	if err != nil {
		return nil, nil, err
	}

	start, end := utility.MonthRangeUTC(year, month)
	subs, err := s.subs.Find(ctx, bson.M{
		"submittedAt": bson.M{"$gte": start.UnixMilli(), "$lt": end.UnixMilli()},
	}, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
	if err != nil {
		return nil, nil, err
	}
	return plans, subs, nil
}

// UserCompliance đối chiếu toàn bộ submission của một user trong tháng
// với kế hoạch. Không có submission nào thì kết quả là "No".
func (s *ComplianceService) UserCompliance(ctx context.Context, username string, year int, month time.Month) (*UserComplianceResult, error) {
	plans, subs, err := s.FetchMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	var userSubs []inspectionmodels.Submission
	for _, sub := range subs {
		if strings.EqualFold(sub.Username, username) {
			userSubs = append(userSubs, sub)
		}
	}

	// Trạng thái suy từ chính lượt phân hoạch, không đối chiếu kế hoạch lại
	compliant, nonCompliant, _ := PartitionByCompliance(userSubs, plans)
	return &UserComplianceResult{
		Username:     strings.ToLower(username),
		Year:         year,
		Month:        int(month),
		Status:       ComplianceStatus(len(userSubs), len(nonCompliant)),
		Total:        len(userSubs),
		Compliant:    len(compliant),
		NonCompliant: len(nonCompliant),
	}, nil
}

// MonthlySummary tính tổng hợp tháng cho mọi user xuất hiện trong kế
// hoạch hoặc trong submission. Ba bảng all/compliant/nonCompliant dùng
// chung một lượt phân hoạch.
func (s *ComplianceService) MonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlySummaryResult, error) {
	plans, subs, err := s.FetchMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return BuildMonthlySummaryAll(plans, subs, year, month), nil
}

// BuildMonthlySummaryAll dựng ba bảng tổng hợp từ dữ liệu đã tải.
// Tách riêng để report dùng lại mà không tải dữ liệu hai lần.
func BuildMonthlySummaryAll(plans []mcpmodels.VisitPlanEntry, subs []inspectionmodels.Submission, year int, month time.Month) *MonthlySummaryResult {
	usernames := collectUsernames(plans, subs)
	compliant, nonCompliant, _ := PartitionByCompliance(subs, plans)

	result := &MonthlySummaryResult{Year: year, Month: int(month)}
	for _, username := range usernames {
		result.All = append(result.All, BuildMonthlySummary(username, plans, subs, year, month))
		result.Compliant = append(result.Compliant, BuildMonthlySummary(username, plans, compliant, year, month))
		result.NonCompliant = append(result.NonCompliant, BuildMonthlySummary(username, plans, nonCompliant, year, month))
	}
	return result
}

// collectUsernames gom username (chữ thường) từ cả kế hoạch lẫn
// submission, sắp theo alphabet để kết quả ổn định.
func collectUsernames(plans []mcpmodels.VisitPlanEntry, subs []inspectionmodels.Submission) []string {
	seen := make(map[string]bool)
	for _, plan := range plans {
		if name := strings.ToLower(strings.TrimSpace(plan.Username)); name != "" {
			seen[name] = true
		}
	}
	for _, sub := range subs {
		if name := strings.ToLower(strings.TrimSpace(sub.Username)); name != "" {
			seen[name] = true
		}
	}

	usernames := make([]string, 0, len(seen))
	for name := range seen {
		usernames = append(usernames, name)
	}
	sort.Strings(usernames)
	return usernames
}
