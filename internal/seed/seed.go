// Package seed holds the bundled default cerpen collection and the merge
// rule that reconciles it with locally stored records.
package seed

import "tintaku/internal/models"

// Merge combines the bundled seed collection with the stored one. Every seed
// record is inserted first, then every local record, so a local record always
// wins on an id collision. The result order is unspecified; callers sort.
// Merge never mutates its inputs and is idempotent.
func Merge(seed, local []models.Cerpen) []models.Cerpen {
	byID := make(map[string]models.Cerpen, len(seed)+len(local))
	order := make([]string, 0, len(seed)+len(local))

	for _, c := range seed {
		if _, ok := byID[c.ID]; !ok {
			order = append(order, c.ID)
		}
		byID[c.ID] = c
	}
	for _, c := range local {
		if _, ok := byID[c.ID]; !ok {
			order = append(order, c.ID)
		}
		byID[c.ID] = c
	}

	merged := make([]models.Cerpen, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	return merged
}

// Default returns the cerpen collection that ships with the application.
func Default() []models.Cerpen {
	return []models.Cerpen{
		{
			ID:       "c0seed0001",
			Title:    "Senja di Pelabuhan Kecil",
			Category: "Kehidupan",
			Date:     "2024-01-15",
			Summary:  "Seorang nelayan tua menunggu kapal yang tidak pernah kembali.",
			Content:  "<p>Pak Karta duduk di ujung dermaga setiap sore, memandangi garis cakrawala yang perlahan berubah jingga. Tiga puluh tahun sudah ia menunggu di tempat yang sama.</p><p>Orang-orang pelabuhan sudah berhenti bertanya. Mereka hanya mengangguk ketika lewat, dan Pak Karta balas mengangguk, matanya tidak pernah lepas dari laut.</p>",
		},
		{
			ID:       "c0seed0002",
			Title:    "Hujan Bulan Juni",
			Category: "Romansa",
			Date:     "2024-02-03",
			Summary:  "Dua orang asing bertemu di halte yang sama setiap kali hujan turun.",
			Content:  "<p>Aruna selalu lupa membawa payung. Begitu juga lelaki berkacamata yang berdiri di ujung halte, yang setiap kali hujan turun muncul entah dari mana dengan buku yang berbeda di tangannya.</p><p>Bulan Juni itu hujan turun sembilan kali. Pada hujan kesembilan, lelaki itu akhirnya menoleh.</p>",
		},
		{
			ID:       "c0seed0003",
			Title:    "Warung Terakhir",
			Category: "Kehidupan",
			Date:     "2023-11-28",
			Summary:  "Warung kopi Bu Siti adalah yang terakhir berdiri di gang yang akan digusur.",
			Content:  "<p>Surat pemberitahuan itu sudah tiga minggu tertempel di tiang listrik depan warung. Bu Siti tidak pernah membacanya sampai habis; baginya, menyeduh kopi untuk pelanggan pagi lebih penting daripada membaca tanggal penggusuran.</p>",
		},
	}
}
