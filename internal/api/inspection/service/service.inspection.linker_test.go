package inspectionsvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
)

func makeSub(sessionID, storeID, categoryID, subType string, submittedAt int64) inspectionmodels.Submission {
	return inspectionmodels.Submission{
		ID:             primitive.NewObjectID(),
		Username:       "hieu",
		SessionID:      sessionID,
		StoreID:        storeID,
		StoreName:      "Cửa hàng " + storeID,
		CategoryID:     categoryID,
		CategoryName:   "Ngành " + categoryID,
		SubmissionType: subType,
		SubmittedAt:    submittedAt,
		Images:         []string{"https://example.test/" + categoryID + ".jpg"},
	}
}

func TestLinkSessions_PartitionsBySessionAndStore(t *testing.T) {
	subs := []inspectionmodels.Submission{
		makeSub("s1", "100", "c1", inspectionmodels.TypeBefore, 10),
		makeSub("s1", "100", "c2", inspectionmodels.TypeBefore, 20),
		makeSub("s1", "100", "c1", inspectionmodels.TypeAfter, 30),
		makeSub("s1", "200", "c1", inspectionmodels.TypeBefore, 40), // cùng sessionId, khác cửa hàng
		makeSub("s2", "100", "c1", inspectionmodels.TypeBefore, 50),
	}

	sessions, warnings := LinkSessions(subs)

	if len(warnings) != 0 {
		t.Fatalf("không được có cảnh báo, got %v", warnings)
	}
	if len(sessions) != 3 {
		t.Fatalf("số phiên = %d, muốn 3", len(sessions))
	}

	s1 := sessions["s1|100"]
	if s1 == nil {
		t.Fatal("thiếu phiên s1|100")
	}
	if len(s1.Before) != 2 || len(s1.After) != 1 {
		t.Errorf("phiên s1|100: before=%d after=%d, muốn 2/1", len(s1.Before), len(s1.After))
	}
	if s1.SubmittedAt != 10 {
		t.Errorf("submittedAt của phiên phải là thời điểm sớm nhất, got %d", s1.SubmittedAt)
	}

	// Không submission nào bị rơi hoặc xuất hiện hai lần
	total := 0
	for _, session := range sessions {
		total += len(session.Before) + len(session.After)
	}
	if total != len(subs) {
		t.Errorf("tổng submission sau gom nhóm = %d, muốn %d", total, len(subs))
	}
}

func TestLinkSessions_PreservesOrderWithinGroup(t *testing.T) {
	subs := []inspectionmodels.Submission{
		makeSub("s1", "100", "c3", inspectionmodels.TypeBefore, 30),
		makeSub("s1", "100", "c1", inspectionmodels.TypeBefore, 10),
		makeSub("s1", "100", "c2", inspectionmodels.TypeBefore, 20),
	}

	sessions, _ := LinkSessions(subs)
	before := sessions["s1|100"].Before

	var got []string
	for _, sub := range before {
		got = append(got, sub.CategoryID)
	}
	want := []string{"c3", "c1", "c2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("thứ tự trong nhóm phải theo thứ tự input: got %v, muốn %v", got, want)
	}
}

func TestLinkSessions_SkipsAndReportsMissingKeys(t *testing.T) {
	noSession := makeSub("", "100", "c1", inspectionmodels.TypeBefore, 10)
	noStore := makeSub("s1", "", "c1", inspectionmodels.TypeBefore, 20)
	valid := makeSub("s1", "100", "c1", inspectionmodels.TypeBefore, 30)

	sessions, warnings := LinkSessions([]inspectionmodels.Submission{noSession, noStore, valid})

	if len(sessions) != 1 {
		t.Fatalf("số phiên = %d, muốn 1", len(sessions))
	}
	if len(warnings) != 2 {
		t.Fatalf("số cảnh báo = %d, muốn 2: %v", len(warnings), warnings)
	}
}

func TestLinkSessions_SkipsAndReportsInvalidType(t *testing.T) {
	badType := makeSub("s1", "100", "c1", "during", 10)
	emptyType := makeSub("s1", "100", "c2", "", 20)
	valid := makeSub("s1", "100", "c3", inspectionmodels.TypeBefore, 30)

	sessions, warnings := LinkSessions([]inspectionmodels.Submission{badType, emptyType, valid})

	if len(warnings) != 2 {
		t.Fatalf("số cảnh báo = %d, muốn 2: %v", len(warnings), warnings)
	}

	s1 := sessions["s1|100"]
	if s1 == nil {
		t.Fatal("thiếu phiên s1|100")
	}
	// Loại không hợp lệ không được âm thầm rơi vào danh sách before
	if len(s1.Before) != 1 || len(s1.After) != 0 {
		t.Errorf("phiên s1|100: before=%d after=%d, muốn 1/0", len(s1.Before), len(s1.After))
	}
}

func TestLinkSessions_Idempotent(t *testing.T) {
	subs := []inspectionmodels.Submission{
		makeSub("s1", "100", "c1", inspectionmodels.TypeBefore, 10),
		makeSub("s1", "100", "c1", inspectionmodels.TypeAfter, 20),
		makeSub("s2", "100", "c2", inspectionmodels.TypeBefore, 30),
	}

	first, _ := LinkSessions(subs)
	second, _ := LinkSessions(subs)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("gom nhóm hai lần trên cùng input phải cho kết quả giống hệt nhau")
	}
}

func TestLinkSessionsByCategory_SplitsPerCategory(t *testing.T) {
	subs := []inspectionmodels.Submission{
		makeSub("s1", "100", "c1", inspectionmodels.TypeBefore, 10),
		makeSub("s1", "100", "c1", inspectionmodels.TypeAfter, 20),
		makeSub("s1", "100", "c2", inspectionmodels.TypeBefore, 30),
	}

	sessions, warnings := LinkSessionsByCategory(subs)

	if len(warnings) != 0 {
		t.Fatalf("không được có cảnh báo, got %v", warnings)
	}
	if len(sessions) != 2 {
		t.Fatalf("số nhóm = %d, muốn 2", len(sessions))
	}

	c1 := sessions["s1|100|c1"]
	if c1 == nil || len(c1.Before) != 1 || len(c1.After) != 1 {
		t.Errorf("nhóm s1|100|c1 phải có đúng 1 before và 1 after")
	}
	if c1.CategoryID != "c1" {
		t.Errorf("nhóm theo ngành hàng phải mang categoryId, got %q", c1.CategoryID)
	}
}

func TestSortSessionsByRecency(t *testing.T) {
	sessions, _ := LinkSessions([]inspectionmodels.Submission{
		makeSub("cu", "100", "c1", inspectionmodels.TypeBefore, 10),
		makeSub("moi", "100", "c1", inspectionmodels.TypeBefore, 99),
		makeSub("giua", "100", "c1", inspectionmodels.TypeBefore, 50),
	})

	sorted := SortSessionsByRecency(sessions)

	var got []string
	for _, session := range sorted {
		got = append(got, session.SessionID)
	}
	want := []string{"moi", "giua", "cu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("thứ tự phiên phải mới nhất trước: got %v, muốn %v", got, want)
	}
}
