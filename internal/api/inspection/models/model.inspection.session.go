package inspectionmodels

// InspectionSession là một phiên kiểm tra được tái dựng lúc truy vấn từ các
// Submission cùng (sessionId, storeId). Không lưu riêng trong MongoDB.
type InspectionSession struct {
	SessionID   string       `json:"sessionId"`
	StoreID     string       `json:"storeId"`
	StoreName   string       `json:"storeName"`
	CategoryID  string       `json:"categoryId,omitempty"` // Chỉ có khi gom nhóm theo ngành hàng
	Username    string       `json:"username"`
	Before      []Submission `json:"before"`
	After       []Submission `json:"after"`
	SubmittedAt int64        `json:"submittedAt"` // Thời điểm sớm nhất trong phiên (UnixMilli)
}

// BeforeComplete cho biết phiên đã có dữ liệu pha before chưa:
// ít nhất một ngành hàng có ảnh hoặc ghi chú.
func (s *InspectionSession) BeforeComplete() bool {
	for _, sub := range s.Before {
		if sub.HasContent() {
			return true
		}
	}
	return false
}

// AfterEligible cho biết phiên đã đủ điều kiện bước vào pha after chưa.
func (s *InspectionSession) AfterEligible() bool {
	return s.BeforeComplete()
}

// ReadyToFinalize cho biết mọi ngành hàng trong pha after có ảnh
// đều đã có câu trả lời khắc phục chưa.
func (s *InspectionSession) ReadyToFinalize() bool {
	if len(s.After) == 0 {
		return false
	}
	for _, sub := range s.After {
		if len(sub.Images) > 0 && !sub.Fixed.Answered() {
			return false
		}
	}
	return true
}
