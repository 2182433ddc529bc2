// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
//
// Deploy edilen binary yanında migration dosyalarına ihtiyaç duymaz;
// //go:embed directive'i derleme zamanında dosyaları içeri alır.
package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations, gömülü migration dosyalarını kök dizin olarak döner —
// New() doğrudan bu FS'i alır, "migrations/" önekiyle uğraşmaz.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// Gömülü dizin derleme zamanında sabittir; buraya düşmek
		// embed directive'inin bozulduğu anlamına gelir.
		panic(err)
	}
	return sub
}
