package models

// Teacher represents one instructor from the directory sheet.
type Teacher struct {
	Code      string `json:"kode"`
	Name      string `json:"nama"`
	Subject   string `json:"bidang_studi"`
	Email     string `json:"email"`
	WhatsApp  string `json:"whatsapp"`
	Residence string `json:"domisili"`
	// Username is derived from the WhatsApp number (country/trunk prefix
	// stripped), never entered independently.
	Username string `json:"username"`
	Password string `json:"password"`
}

// TeacherRow is a directory sheet row: the teacher record plus the login name
// exactly as the sheet stores it, used for credential matching.
type TeacherRow struct {
	Teacher
	LoginName string `json:"login_name"`
}

// ProfileUpdate carries a validated profile mutation.
type ProfileUpdate struct {
	Code      string
	Name      string
	Subject   string
	Email     string
	WhatsApp  string
	Residence string
	Username  string
	Password  string
}
