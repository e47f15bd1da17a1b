package seeds

import (
	users "sekolahku_backend/internals/seeds/users"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	//* User (admin, guru, siswa contoh)
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}
