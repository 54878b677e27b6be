package dto

import "testing"

func TestDecodeUpdateRequestNullClearsField(t *testing.T) {
	body := []byte(`{"donor_name":"B Patel","village":null,"donation2_amount":null}`)

	req, err := DecodeUpdateRequest(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if req.DonorName == nil || *req.DonorName != "B Patel" {
		t.Errorf("donor_name = %v, want pointer to \"B Patel\"", req.DonorName)
	}
	if req.Village == nil || *req.Village != "" {
		t.Errorf("explicit null village should clear, got %v", req.Village)
	}
	if req.Donation2Amount == nil || *req.Donation2Amount != 0 {
		t.Errorf("explicit null amount should zero, got %v", req.Donation2Amount)
	}
	if req.Residence != nil {
		t.Errorf("absent key must stay untouched, got %v", req.Residence)
	}
	if req.TotalAmount != nil {
		t.Errorf("absent amount must stay untouched, got %v", req.TotalAmount)
	}
}

func TestDecodeUpdateRequestNullDateIsZeroTime(t *testing.T) {
	req, err := DecodeUpdateRequest([]byte(`{"receipt_date":null}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.ReceiptDate == nil || !req.ReceiptDate.IsZero() {
		t.Errorf("null receipt_date should surface as zero time, got %v", req.ReceiptDate)
	}
}

func TestDecodeUpdateRequestBadJSON(t *testing.T) {
	if _, err := DecodeUpdateRequest([]byte(`{"donor_name":`)); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
