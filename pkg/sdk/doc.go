// Package saunarec embeds the sauna recommender in a Go program without the
// HTTP server.
//
// A client is built once from a catalog (a CSV/XLSX file or an in-memory
// list) and is safe for concurrent use:
//
//	client, err := saunarec.New(ctx,
//	    saunarec.WithCatalogFile("data/saunas.csv"),
//	    saunarec.WithPostsFile("posts.json"),
//	)
//	recs, _ := client.Recommend(ctx, saunarec.Preferences{
//	    RefreshType: "ととのう",
//	    SaunaTemp:   "高温",
//	    WaterTemp:   "冷たい",
//	})
//	_, _ = client.Posts().Create(ctx, "name", "最高でした")
//
// The post board is optional; without WithPostsFile or WithRedis,
// Posts() returns ErrPostsDisabled for every call.
package saunarec
