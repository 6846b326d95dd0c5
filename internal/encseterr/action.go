package encseterr

// Action names the store operation an error was raised from.
type Action int8

const (
	Unknown Action = iota
	Encode
	Decode
	Hash
	Sync
	Backup
	LoadKey
)

func (a Action) String() string {
	actions := map[Action]string{
		Unknown: "unknown",
		Encode:  "encode",
		Decode:  "decode",
		Hash:    "hash",
		Sync:    "sync",
		Backup:  "backup",
		LoadKey: "load key",
	}

	if str, ok := actions[a]; ok {
		return str
	}
	return "unknown"
}
