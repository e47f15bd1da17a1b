package constants

// Role pengguna (immutable per sesi, diambil dari token)
const (
	RoleAdmin = "admin"
	RoleGuru  = "guru"
	RoleSiswa = "siswa"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleGuru,
		RoleSiswa,
	}

	// Guru dan admin boleh menyetujui/menolak absensi
	GuruAndAdmin = []string{
		RoleGuru,
		RoleAdmin,
	}
)
