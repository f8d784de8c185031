// Command genplays writes a fake save-data export for local testing:
//
//	genplays -plays 500 -songs 50 -out export.db
//	scoresync -pcbid TEST -card 0000 export.db
package main

import (
	"flag"
	"os"

	"github.com/okian/scoresync/internal/genplays"
)

func main() {
	numPlays := flag.Int("plays", 100, "number of plays to generate")
	numSongs := flag.Int("songs", 100, "size of the fake song pool")
	out := flag.String("out", "export.db", "output file")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		os.Stderr.WriteString("cannot create output: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer f.Close()

	if err := genplays.Write(f, genplays.Config{NumPlays: *numPlays, NumSongs: *numSongs}); err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
