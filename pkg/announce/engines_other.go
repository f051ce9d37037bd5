//go:build !windows

package announce

func platformEngines(conf *Configuration) []Engine {
	return []Engine{
		&sayEngine{conf: conf},
		&espeakEngine{conf: conf, binary: "espeak-ng"},
		&espeakEngine{conf: conf, binary: "espeak"},
		&fliteEngine{conf: conf},
	}
}
