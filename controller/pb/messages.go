package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

// Messages below are encoded with gogo/protobuf using the struct tags, no
// descriptor registration is needed for Marshal/Unmarshal.

// Point is a single grid cell.
type Point struct {
	X int32 `protobuf:"varint,1,opt,name=X,proto3" json:"X" msgpack:"x"`
	Y int32 `protobuf:"varint,2,opt,name=Y,proto3" json:"Y" msgpack:"y"`
}

func (m *Point) Reset()         { *m = Point{} }
func (m *Point) String() string { return proto.CompactTextString(m) }
func (*Point) ProtoMessage()    {}

// Death records how a round ended.
type Death struct {
	Cause string `protobuf:"bytes,1,opt,name=Cause,proto3" json:"Cause,omitempty" msgpack:"cause"`
	Turn  int64  `protobuf:"varint,2,opt,name=Turn,proto3" json:"Turn,omitempty" msgpack:"turn"`
	Score int32  `protobuf:"varint,3,opt,name=Score,proto3" json:"Score,omitempty" msgpack:"score"`
}

func (m *Death) Reset()         { *m = Death{} }
func (m *Death) String() string { return proto.CompactTextString(m) }
func (*Death) ProtoMessage()    {}

// Snake is an ordered list of segments, head first.
type Snake struct {
	ID        string   `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID,omitempty" msgpack:"id"`
	Name      string   `protobuf:"bytes,2,opt,name=Name,proto3" json:"Name,omitempty" msgpack:"name"`
	Body      []*Point `protobuf:"bytes,3,rep,name=Body,proto3" json:"Body,omitempty" msgpack:"body"`
	Direction string   `protobuf:"bytes,4,opt,name=Direction,proto3" json:"Direction,omitempty" msgpack:"direction"`
	Heading   string   `protobuf:"bytes,5,opt,name=Heading,proto3" json:"Heading,omitempty" msgpack:"heading"`
	HeadColor string   `protobuf:"bytes,6,opt,name=HeadColor,proto3" json:"HeadColor,omitempty" msgpack:"head_color"`
	BodyColor string   `protobuf:"bytes,7,opt,name=BodyColor,proto3" json:"BodyColor,omitempty" msgpack:"body_color"`
}

func (m *Snake) Reset()         { *m = Snake{} }
func (m *Snake) String() string { return proto.CompactTextString(m) }
func (*Snake) ProtoMessage()    {}

// GameFrame is one snapshot of a running session.
type GameFrame struct {
	Turn           int64    `protobuf:"varint,1,opt,name=Turn,proto3" json:"Turn" msgpack:"turn"`
	Player         *Snake   `protobuf:"bytes,2,opt,name=Player,proto3" json:"Player,omitempty" msgpack:"player"`
	Enemy          *Snake   `protobuf:"bytes,3,opt,name=Enemy,proto3" json:"Enemy,omitempty" msgpack:"enemy"`
	Food           *Point   `protobuf:"bytes,4,opt,name=Food,proto3" json:"Food,omitempty" msgpack:"food"`
	Obstacles      []*Point `protobuf:"bytes,5,rep,name=Obstacles,proto3" json:"Obstacles,omitempty" msgpack:"obstacles"`
	FoodAge        int32    `protobuf:"varint,6,opt,name=FoodAge,proto3" json:"FoodAge" msgpack:"food_age"`
	FoodLifetime   int32    `protobuf:"varint,7,opt,name=FoodLifetime,proto3" json:"FoodLifetime" msgpack:"food_lifetime"`
	Level          int32    `protobuf:"varint,8,opt,name=Level,proto3" json:"Level" msgpack:"level"`
	Eaten          int32    `protobuf:"varint,9,opt,name=Eaten,proto3" json:"Eaten" msgpack:"eaten"`
	StartScore     int32    `protobuf:"varint,10,opt,name=StartScore,proto3" json:"StartScore" msgpack:"start_score"`
	HighScore      int32    `protobuf:"varint,11,opt,name=HighScore,proto3" json:"HighScore" msgpack:"high_score"`
	Round          int32    `protobuf:"varint,12,opt,name=Round,proto3" json:"Round" msgpack:"round"`
	PlayerInterval int32    `protobuf:"varint,13,opt,name=PlayerInterval,proto3" json:"PlayerInterval" msgpack:"player_interval"`
	EnemyInterval  int32    `protobuf:"varint,14,opt,name=EnemyInterval,proto3" json:"EnemyInterval" msgpack:"enemy_interval"`
	Started        bool     `protobuf:"varint,15,opt,name=Started,proto3" json:"Started" msgpack:"started"`
	Paused         bool     `protobuf:"varint,16,opt,name=Paused,proto3" json:"Paused" msgpack:"paused"`
	LeveledUp      bool     `protobuf:"varint,17,opt,name=LeveledUp,proto3" json:"LeveledUp" msgpack:"leveled_up"`
	Death          *Death   `protobuf:"bytes,18,opt,name=Death,proto3" json:"Death,omitempty" msgpack:"death"`
}

func (m *GameFrame) Reset()         { *m = GameFrame{} }
func (m *GameFrame) String() string { return proto.CompactTextString(m) }
func (*GameFrame) ProtoMessage()    {}

// Game holds the session settings and status.
type Game struct {
	ID         string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
	Status     string `protobuf:"bytes,2,opt,name=Status,proto3" json:"Status"`
	Width      int32  `protobuf:"varint,3,opt,name=Width,proto3" json:"Width"`
	Height     int32  `protobuf:"varint,4,opt,name=Height,proto3" json:"Height"`
	StartLevel int32  `protobuf:"varint,5,opt,name=StartLevel,proto3" json:"StartLevel"`
	BorderWrap bool   `protobuf:"varint,6,opt,name=BorderWrap,proto3" json:"BorderWrap"`
	Created    int64  `protobuf:"varint,7,opt,name=Created,proto3" json:"Created"`
}

func (m *Game) Reset()         { *m = Game{} }
func (m *Game) String() string { return proto.CompactTextString(m) }
func (*Game) ProtoMessage()    {}

// Input is a single player action queued for the worker running the game.
type Input struct {
	Type       string `protobuf:"bytes,1,opt,name=Type,proto3" json:"Type"`
	Direction  string `protobuf:"bytes,2,opt,name=Direction,proto3" json:"Direction,omitempty"`
	StartLevel int32  `protobuf:"varint,3,opt,name=StartLevel,proto3" json:"StartLevel,omitempty"`
	BorderWrap bool   `protobuf:"varint,4,opt,name=BorderWrap,proto3" json:"BorderWrap,omitempty"`
}

func (m *Input) Reset()         { *m = Input{} }
func (m *Input) String() string { return proto.CompactTextString(m) }
func (*Input) ProtoMessage()    {}

type CreateRequest struct {
	Width      int32 `protobuf:"varint,1,opt,name=Width,proto3" json:"Width,omitempty"`
	Height     int32 `protobuf:"varint,2,opt,name=Height,proto3" json:"Height,omitempty"`
	StartLevel int32 `protobuf:"varint,3,opt,name=StartLevel,proto3" json:"StartLevel,omitempty"`
	BorderWrap bool  `protobuf:"varint,4,opt,name=BorderWrap,proto3" json:"BorderWrap,omitempty"`
}

func (m *CreateRequest) Reset()         { *m = CreateRequest{} }
func (m *CreateRequest) String() string { return proto.CompactTextString(m) }
func (*CreateRequest) ProtoMessage()    {}

type CreateResponse struct {
	ID string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
}

func (m *CreateResponse) Reset()         { *m = CreateResponse{} }
func (m *CreateResponse) String() string { return proto.CompactTextString(m) }
func (*CreateResponse) ProtoMessage()    {}

type StartRequest struct {
	ID string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
}

func (m *StartRequest) Reset()         { *m = StartRequest{} }
func (m *StartRequest) String() string { return proto.CompactTextString(m) }
func (*StartRequest) ProtoMessage()    {}

type StartResponse struct{}

func (m *StartResponse) Reset()         { *m = StartResponse{} }
func (m *StartResponse) String() string { return proto.CompactTextString(m) }
func (*StartResponse) ProtoMessage()    {}

type StatusRequest struct {
	ID string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
}

func (m *StatusRequest) Reset()         { *m = StatusRequest{} }
func (m *StatusRequest) String() string { return proto.CompactTextString(m) }
func (*StatusRequest) ProtoMessage()    {}

type StatusResponse struct {
	Game      *Game      `protobuf:"bytes,1,opt,name=Game,proto3" json:"Game,omitempty"`
	LastFrame *GameFrame `protobuf:"bytes,2,opt,name=LastFrame,proto3" json:"LastFrame,omitempty"`
}

func (m *StatusResponse) Reset()         { *m = StatusResponse{} }
func (m *StatusResponse) String() string { return proto.CompactTextString(m) }
func (*StatusResponse) ProtoMessage()    {}

type PopRequest struct{}

func (m *PopRequest) Reset()         { *m = PopRequest{} }
func (m *PopRequest) String() string { return proto.CompactTextString(m) }
func (*PopRequest) ProtoMessage()    {}

type PopResponse struct {
	ID string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
}

func (m *PopResponse) Reset()         { *m = PopResponse{} }
func (m *PopResponse) String() string { return proto.CompactTextString(m) }
func (*PopResponse) ProtoMessage()    {}

type LockRequest struct {
	ID string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
}

func (m *LockRequest) Reset()         { *m = LockRequest{} }
func (m *LockRequest) String() string { return proto.CompactTextString(m) }
func (*LockRequest) ProtoMessage()    {}

type LockResponse struct {
	Token string `protobuf:"bytes,1,opt,name=Token,proto3" json:"Token"`
}

func (m *LockResponse) Reset()         { *m = LockResponse{} }
func (m *LockResponse) String() string { return proto.CompactTextString(m) }
func (*LockResponse) ProtoMessage()    {}

type UnlockRequest struct {
	ID string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
}

func (m *UnlockRequest) Reset()         { *m = UnlockRequest{} }
func (m *UnlockRequest) String() string { return proto.CompactTextString(m) }
func (*UnlockRequest) ProtoMessage()    {}

type UnlockResponse struct{}

func (m *UnlockResponse) Reset()         { *m = UnlockResponse{} }
func (m *UnlockResponse) String() string { return proto.CompactTextString(m) }
func (*UnlockResponse) ProtoMessage()    {}

type AddGameFrameRequest struct {
	ID        string     `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
	GameFrame *GameFrame `protobuf:"bytes,2,opt,name=GameFrame,proto3" json:"GameFrame,omitempty"`
}

func (m *AddGameFrameRequest) Reset()         { *m = AddGameFrameRequest{} }
func (m *AddGameFrameRequest) String() string { return proto.CompactTextString(m) }
func (*AddGameFrameRequest) ProtoMessage()    {}

type AddGameFrameResponse struct {
	Game *Game `protobuf:"bytes,1,opt,name=Game,proto3" json:"Game,omitempty"`
}

func (m *AddGameFrameResponse) Reset()         { *m = AddGameFrameResponse{} }
func (m *AddGameFrameResponse) String() string { return proto.CompactTextString(m) }
func (*AddGameFrameResponse) ProtoMessage()    {}

type ListGameFramesRequest struct {
	ID     string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
	Offset int32  `protobuf:"varint,2,opt,name=Offset,proto3" json:"Offset"`
	Limit  int32  `protobuf:"varint,3,opt,name=Limit,proto3" json:"Limit"`
}

func (m *ListGameFramesRequest) Reset()         { *m = ListGameFramesRequest{} }
func (m *ListGameFramesRequest) String() string { return proto.CompactTextString(m) }
func (*ListGameFramesRequest) ProtoMessage()    {}

type ListGameFramesResponse struct {
	Frames []*GameFrame `protobuf:"bytes,1,rep,name=Frames,proto3" json:"Frames"`
	Count  int32        `protobuf:"varint,2,opt,name=Count,proto3" json:"Count"`
}

func (m *ListGameFramesResponse) Reset()         { *m = ListGameFramesResponse{} }
func (m *ListGameFramesResponse) String() string { return proto.CompactTextString(m) }
func (*ListGameFramesResponse) ProtoMessage()    {}

type EndGameRequest struct {
	ID     string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
	Status string `protobuf:"bytes,2,opt,name=Status,proto3" json:"Status,omitempty"`
}

func (m *EndGameRequest) Reset()         { *m = EndGameRequest{} }
func (m *EndGameRequest) String() string { return proto.CompactTextString(m) }
func (*EndGameRequest) ProtoMessage()    {}

type EndGameResponse struct{}

func (m *EndGameResponse) Reset()         { *m = EndGameResponse{} }
func (m *EndGameResponse) String() string { return proto.CompactTextString(m) }
func (*EndGameResponse) ProtoMessage()    {}

type PushInputRequest struct {
	ID    string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
	Input *Input `protobuf:"bytes,2,opt,name=Input,proto3" json:"Input,omitempty"`
}

func (m *PushInputRequest) Reset()         { *m = PushInputRequest{} }
func (m *PushInputRequest) String() string { return proto.CompactTextString(m) }
func (*PushInputRequest) ProtoMessage()    {}

type PushInputResponse struct{}

func (m *PushInputResponse) Reset()         { *m = PushInputResponse{} }
func (m *PushInputResponse) String() string { return proto.CompactTextString(m) }
func (*PushInputResponse) ProtoMessage()    {}

type PopInputsRequest struct {
	ID string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID"`
}

func (m *PopInputsRequest) Reset()         { *m = PopInputsRequest{} }
func (m *PopInputsRequest) String() string { return proto.CompactTextString(m) }
func (*PopInputsRequest) ProtoMessage()    {}

type PopInputsResponse struct {
	Inputs []*Input `protobuf:"bytes,1,rep,name=Inputs,proto3" json:"Inputs"`
}

func (m *PopInputsResponse) Reset()         { *m = PopInputsResponse{} }
func (m *PopInputsResponse) String() string { return proto.CompactTextString(m) }
func (*PopInputsResponse) ProtoMessage()    {}

type PingRequest struct{}

func (m *PingRequest) Reset()         { *m = PingRequest{} }
func (m *PingRequest) String() string { return proto.CompactTextString(m) }
func (*PingRequest) ProtoMessage()    {}

type PingResponse struct {
	Version string `protobuf:"bytes,1,opt,name=Version,proto3" json:"Version"`
}

func (m *PingResponse) Reset()         { *m = PingResponse{} }
func (m *PingResponse) String() string { return proto.CompactTextString(m) }
func (*PingResponse) ProtoMessage()    {}
