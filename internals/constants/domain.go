package constants

// Status absensi
const (
	AbsensiPending    = "pending"
	AbsensiHadir      = "hadir"
	AbsensiTidakHadir = "tidak_hadir"
)

// Mata pelajaran tugas. JURUSAN wajib menyertakan field jurusan
// dan hanya terlihat oleh siswa dengan jurusan yang sama.
const (
	MapelMTK     = "MTK"
	MapelEnglish = "ENGLISH"
	MapelJurusan = "JURUSAN"
)

var AllMapel = []string{MapelMTK, MapelEnglish, MapelJurusan}

// Tipe notifikasi (enum tertutup)
const (
	NotifTugasBaru      = "tugas_baru"
	NotifTugasTerlambat = "tugas_terlambat"
	NotifTugasDinilai   = "tugas_dinilai"
	NotifAbsenPending   = "absen_pending"
	NotifAbsenApproved  = "absen_approved"
	NotifAbsenRejected  = "absen_rejected"
)

// Channel privat realtime per user: user.<id>
const (
	RealtimeChannelPrefix = "user."
	RealtimeEventName     = "notification.sent"
)
