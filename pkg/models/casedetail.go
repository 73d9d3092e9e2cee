package models

import "time"

// CaseDetail holds the extended, once-per-case facts that the scraper
// fills in alongside the base Case record (advocates, FIR block, stage).
// Owned by the external scraper/ingest pipeline; the core only reads it.
type CaseDetail struct {
	CaseID              string   `json:"case_id" validate:"required"`
	AdvocatesPetitioner []string `json:"advocates_petitioner,omitempty"`
	AdvocatesRespondent []string `json:"advocates_respondent,omitempty"`
	CaseDescription     string   `json:"case_description,omitempty"`
	CaseStage           string   `json:"case_stage,omitempty"`
	ShortOrder          string   `json:"short_order,omitempty"`
	FIR                 *FIR     `json:"fir,omitempty"`
}

// FIR is the First Information Report block associated with a criminal case.
type FIR struct {
	Number        string    `json:"number,omitempty"`
	Date          time.Time `json:"date,omitempty"`
	PoliceStation string    `json:"police_station,omitempty"`
	UnderSection  string    `json:"under_section,omitempty"`
	Incident      string    `json:"incident,omitempty"`
	Accused       string    `json:"accused,omitempty"`
}

// OrderSourceTag identifies which scrape pass produced an Order or Comment row.
type OrderSourceTag string

const (
	SourceTagMain    OrderSourceTag = "main"
	SourceTagDetail  OrderSourceTag = "detail"
	SourceTagHearing OrderSourceTag = "hearing"
)

// Order is one entry in a case's order sheet. Unique per (CaseID, SerialNo, Source).
type Order struct {
	CaseID       string         `json:"case_id" validate:"required"`
	SerialNo     int            `json:"sr_no"`
	HearingDate  time.Time      `json:"hearing_date"`
	Bench        string         `json:"bench,omitempty"`
	ListType     string         `json:"list_type,omitempty"`
	Stage        string         `json:"stage,omitempty"`
	ShortOrder   string         `json:"short_order,omitempty"`
	DisposalDate *time.Time     `json:"disposal_date,omitempty"`
	Source       OrderSourceTag `json:"source"`
}

// Comment is one compliance/CM entry. Unique per (CaseID, ComplianceDate, CaseNo, Source).
type Comment struct {
	CaseID         string         `json:"case_id" validate:"required"`
	ComplianceDate time.Time      `json:"compliance_date"`
	CaseNo         string         `json:"case_no,omitempty"`
	DocType        string         `json:"doc_type,omitempty"`
	Parties        string         `json:"parties,omitempty"`
	Description    string         `json:"description,omitempty"`
	Source         OrderSourceTag `json:"source"`
}

// CasePartySide is the role a CaseParty plays (distinct from models.Party's
// generic civil-law role set; these are the Pakistani court filing sides).
type CasePartySide string

const (
	SidePetitioner CasePartySide = "petitioner"
	SideRespondent CasePartySide = "respondent"
	SideOther      CasePartySide = "other"
)

// CaseParty is one named party on a case, unique per (CaseID, PartyNumber).
type CaseParty struct {
	CaseID      string        `json:"case_id" validate:"required"`
	PartyNumber int           `json:"party_number"`
	Name        string        `json:"name" validate:"required"`
	Side        CasePartySide `json:"side"`
}

// Document is a scraped file attached to a case, deduplicated by SHA256.
type Document struct {
	ID         string `json:"id" validate:"required"`
	CaseID     string `json:"case_id" validate:"required"`
	FilePath   string `json:"file_path,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	SHA256     string `json:"sha256" validate:"required"`
	SizeBytes  int64  `json:"size_bytes"`
	TotalPages int    `json:"total_pages"`
	Downloaded bool   `json:"downloaded"`
	Processed  bool   `json:"processed"`
	Cleaned    bool   `json:"cleaned"`
}

// ExtractionMethod is how DocumentText.CleanText was produced.
type ExtractionMethod string

const (
	ExtractionPyMuPDF ExtractionMethod = "pymupdf"
	ExtractionOCR     ExtractionMethod = "ocr"
)

// DocumentText is the extracted text for one page of a Document.
type DocumentText struct {
	DocumentID string           `json:"document_id" validate:"required"`
	Page       int              `json:"page"`
	RawText    string           `json:"raw_text,omitempty"`
	CleanText  string           `json:"clean_text,omitempty"`
	Method     ExtractionMethod `json:"method,omitempty"`
	Confidence float64          `json:"confidence" validate:"min=0,max=1"`
}
