// Package protocol holds the fixed command names and keywords of the Redis
// protocol. Both are plain string types whose bytes are the upper-case
// token sent on the wire.
package protocol

import "github.com/cosmez/redisargs-go/internal/args"

// Command is the leading token of a request, e.g. ZRANGE.
type Command string

const (
	PING          Command = "PING"
	ECHO          Command = "ECHO"
	GET           Command = "GET"
	SET           Command = "SET"
	DEL           Command = "DEL"
	EXISTS        Command = "EXISTS"
	EXPIRE        Command = "EXPIRE"
	ZADD          Command = "ZADD"
	ZRANGE        Command = "ZRANGE"
	ZRANGESTORE   Command = "ZRANGESTORE"
	ZRANGEBYSCORE Command = "ZRANGEBYSCORE"
	ZRANGEBYLEX   Command = "ZRANGEBYLEX"
	ZREVRANGE     Command = "ZREVRANGE"
	ZCARD         Command = "ZCARD"
	ZSCORE        Command = "ZSCORE"
	ZREM          Command = "ZREM"
)

// Keyword is a fixed modifier token inside a request, e.g. BYSCORE.
type Keyword string

const (
	BYSCORE    Keyword = "BYSCORE"
	BYLEX      Keyword = "BYLEX"
	REV        Keyword = "REV"
	LIMIT      Keyword = "LIMIT"
	WITHSCORES Keyword = "WITHSCORES"
	EX         Keyword = "EX"
	PX         Keyword = "PX"
	NX         Keyword = "NX"
	XX         Keyword = "XX"
)

var (
	_ args.Rawable = Command("")
	_ args.Rawable = Keyword("")
)

// precomputed bytes for the known tokens; ad-hoc values fall back to a
// fresh conversion.
var (
	commandRaw = map[Command][]byte{}
	keywordRaw = map[Keyword][]byte{}
)

func init() {
	for _, c := range Commands() {
		commandRaw[c] = []byte(c)
	}
	for _, k := range []Keyword{BYSCORE, BYLEX, REV, LIMIT, WITHSCORES, EX, PX, NX, XX} {
		keywordRaw[k] = []byte(k)
	}
}

// Commands returns every predefined command in declaration order.
func Commands() []Command {
	return []Command{
		PING, ECHO, GET, SET, DEL, EXISTS, EXPIRE,
		ZADD, ZRANGE, ZRANGESTORE, ZRANGEBYSCORE, ZRANGEBYLEX, ZREVRANGE,
		ZCARD, ZSCORE, ZREM,
	}
}

func (c Command) Raw() []byte {
	if b, ok := commandRaw[c]; ok {
		return b
	}
	return []byte(c)
}

func (c Command) String() string { return string(c) }

func (k Keyword) Raw() []byte {
	if b, ok := keywordRaw[k]; ok {
		return b
	}
	return []byte(k)
}

func (k Keyword) String() string { return string(k) }
