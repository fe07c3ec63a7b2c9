package delivery

// BuildPlatformView assembles one platform's episode grid for a title.
// The display range is max(totalEpisodes, completedFromSchedule); when
// neither is known the range is empty and the platform renders without a
// grid.
func BuildPlatformView(rec DeliveryRecord, schedule CommonSchedule, totalEpisodes int) PlatformView {
	span := totalEpisodes
	if fromSchedule := schedule.MaxEpisode(); fromSchedule > span {
		span = fromSchedule
	}

	view := PlatformView{
		PlatformID: rec.PlatformID,
		Count:      rec.Count(),
	}
	for e := 1; e <= span; e++ {
		view.Episodes = append(view.Episodes, EpisodeView{
			Episode:   e,
			Delivered: rec.Episodes[e],
			OpenDate:  schedule.Open[e],
			DueDate:   schedule.Due[e],
		})
	}
	return view
}
