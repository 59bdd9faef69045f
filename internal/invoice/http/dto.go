package http

type ByInvoiceIDRequest struct {
	InvoiceID string `uri:"invoiceId" binding:"required,uuid"`
}

type GenerateInvoiceRequest struct {
	ReservationID string `json:"reservation_id" binding:"required,uuid"`
}

type GenerateReportRequest struct {
	Type        string `json:"type" binding:"required,oneof=revenue_report payment_status_report booking_financials refund_report availability_report"`
	Preset      string `json:"preset" binding:"omitempty,oneof=today last_7_days last_14_days month_to_date last_3_months last_12_months year_to_date custom"`
	StartDate   string `json:"start_date" binding:"omitempty,max=40"`
	EndDate     string `json:"end_date" binding:"omitempty,max=40"`
	Status      string `json:"status" binding:"omitempty,oneof=Pending Success Failed"`
	RoomType    string `json:"room_type" binding:"omitempty,oneof=single double suite"`
	Granularity string `json:"granularity" binding:"omitempty,oneof=daily weekly monthly"`
}

type GeneratedResponse struct {
	Message   string `json:"message"`
	InvoiceID string `json:"invoice_id"`
	FileName  string `json:"file_name"`
}
