package inspectionsvc

import (
	"strings"
	"testing"

	catalogmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/catalog/models"
	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
)

func TestEnrichSubmitter_FillsTdsNameFromStore(t *testing.T) {
	submitter := SubmitterInfo{UserID: "u1", Username: "hieu"}
	store := catalogmodels.Store{StoreCode: "100", StoreName: "CH 100", TdsName: "Anh Tuan"}

	got := enrichSubmitter(submitter, store)

	if got.TdsName != "Anh Tuan" {
		t.Errorf("tdsName phải được lấy từ cửa hàng, got %q", got.TdsName)
	}
	if got.UserID != "u1" || got.Username != "hieu" {
		t.Errorf("các trường khác phải giữ nguyên, got %+v", got)
	}
}

func TestEnrichSubmitter_KeepsExistingTdsName(t *testing.T) {
	submitter := SubmitterInfo{Username: "hieu", TdsName: "Chi Lan"}
	store := catalogmodels.Store{StoreCode: "100", TdsName: "Anh Tuan"}

	got := enrichSubmitter(submitter, store)

	if got.TdsName != "Chi Lan" {
		t.Errorf("tdsName có sẵn không được ghi đè, got %q", got.TdsName)
	}
}

func TestToSubmissions_CarriesTdsName(t *testing.T) {
	svc := &SubmissionService{}
	submitter := enrichSubmitter(
		SubmitterInfo{UserID: "", Username: "hieu"},
		catalogmodels.Store{StoreCode: "100", StoreName: "CH 100", TdsName: "Anh Tuan"},
	)

	entries := []CategoryEntry{{CategoryID: "c1", CategoryName: "Sữa"}}
	docs := svc.toSubmissions(entries, inspectionmodels.TypeBefore, submitter, "100", "CH 100", "s1", 1000)

	if len(docs) != 1 {
		t.Fatalf("số document = %d, muốn 1", len(docs))
	}
	if docs[0].TdsName != "Anh Tuan" {
		t.Errorf("document phải lưu tdsName phi chuẩn hóa, got %q", docs[0].TdsName)
	}
}

func TestBuildUnfixedMessage_IncludesTdsName(t *testing.T) {
	doc := inspectionmodels.Submission{
		StoreID:      "100",
		CategoryName: "Sữa",
		Fixed:        inspectionmodels.FixStatus{State: inspectionmodels.FixNotDone, Note: "hết kệ"},
	}

	withTds := buildUnfixedMessage(SubmitterInfo{Username: "hieu", TdsName: "Anh Tuan"}, "CH 100", doc, nil)
	if !strings.Contains(withTds, "TDS: Anh Tuan") {
		t.Errorf("thông báo phải có dòng TDS khi biết tên giám sát:\n%s", withTds)
	}

	withoutTds := buildUnfixedMessage(SubmitterInfo{Username: "hieu"}, "CH 100", doc, nil)
	if strings.Contains(withoutTds, "TDS:") {
		t.Errorf("thông báo không được có dòng TDS rỗng:\n%s", withoutTds)
	}
}
