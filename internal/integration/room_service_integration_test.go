package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chat_app/internal/domain"
	"chat_app/internal/repository"
	"chat_app/internal/service"
)

func TestCreateRoom_PremiumChargesCreator(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice", 500)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, user.ID, service.CreateRoomInput{
		Name:     "vip lounge",
		RoomType: domain.RoomTypePremium,
		GoldCost: int64Ptr(100),
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	if got := userGold(t, db, user.ID); got != 400 {
		t.Errorf("balance = %d; want 400", got)
	}

	txs, err := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("transactions = %d; want 1", len(txs))
	}
	if txs[0].Amount != -100 || txs[0].Type != domain.TransactionTypeSpend {
		t.Errorf("transaction = %+v; want amount -100 type spend", txs[0])
	}

	participants, err := repository.NewParticipantRepository(db).ListByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("list participants: %v", err)
	}
	if len(participants) != 1 {
		t.Fatalf("participants = %d; want 1", len(participants))
	}
	if participants[0].UserID != user.ID || participants[0].Role != domain.ParticipantRoleAdmin {
		t.Errorf("creator participant = %+v; want user %d role admin", participants[0], user.ID)
	}
}

func TestCreateRoom_PublicIgnoresGoldCost(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "bob", 500)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, user.ID, service.CreateRoomInput{
		Name:     "general",
		RoomType: domain.RoomTypePublic,
		GoldCost: int64Ptr(50),
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	if room.GoldCost != nil {
		t.Errorf("public room stored gold_cost %d; want absent", *room.GoldCost)
	}
	if got := userGold(t, db, user.ID); got != 500 {
		t.Errorf("balance = %d; want 500 (unchanged)", got)
	}

	txs, _ := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, 10)
	if len(txs) != 0 {
		t.Errorf("transactions = %d; want 0", len(txs))
	}
}

func TestCreateRoom_PremiumZeroCostIsFree(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "carol", 10)
	svc := service.NewRoomService(db)

	room, err := svc.CreateRoom(context.Background(), user.ID, service.CreateRoomInput{
		Name:     "free premium",
		RoomType: domain.RoomTypePremium,
		GoldCost: int64Ptr(0),
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if room.RoomType != domain.RoomTypePremium {
		t.Errorf("room type = %s; want premium", room.RoomType)
	}
	if got := userGold(t, db, user.ID); got != 10 {
		t.Errorf("balance = %d; want 10 (unchanged)", got)
	}
}

func TestCreateRoom_InsufficientFunds(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "dave", 25)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, user.ID, service.CreateRoomInput{
		Name:     "too expensive",
		RoomType: domain.RoomTypePremium,
		GoldCost: int64Ptr(50),
	})
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("err = %v; want ErrInsufficientFunds", err)
	}

	// no partial effects
	if got := userGold(t, db, user.ID); got != 25 {
		t.Errorf("balance = %d; want 25", got)
	}
	rooms, _ := svc.ListRooms(ctx, 10)
	if len(rooms) != 0 {
		t.Errorf("rooms = %d; want 0", len(rooms))
	}
	txs, _ := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, 10)
	if len(txs) != 0 {
		t.Errorf("transactions = %d; want 0", len(txs))
	}
}

func TestCreateRoom_UserNotFound(t *testing.T) {
	db := setupDB(t)
	svc := service.NewRoomService(db)

	_, err := svc.CreateRoom(context.Background(), 9999, service.CreateRoomInput{
		Name:     "ghost room",
		RoomType: domain.RoomTypePublic,
	})
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("err = %v; want ErrUserNotFound", err)
	}
}

func TestJoinRoom_PremiumChargesMember(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner", 1000)
	member := createUser(t, db, "member", 200)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, owner.ID, service.CreateRoomInput{
		Name:     "club",
		RoomType: domain.RoomTypePremium,
		GoldCost: int64Ptr(50),
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	p, err := svc.JoinRoom(ctx, room.ID, member.ID)
	if err != nil {
		t.Fatalf("join room: %v", err)
	}
	if p.Role != domain.ParticipantRoleMember {
		t.Errorf("role = %s; want member", p.Role)
	}
	if got := userGold(t, db, member.ID); got != 150 {
		t.Errorf("member balance = %d; want 150", got)
	}

	checkLedgerMatchesBalance(t, db, member.ID, 200)
	checkLedgerMatchesBalance(t, db, owner.ID, 1000)
}

func TestJoinRoom_InsufficientFunds(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner", 1000)
	member := createUser(t, db, "poor", 25)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, owner.ID, service.CreateRoomInput{
		Name:     "club",
		RoomType: domain.RoomTypePremium,
		GoldCost: int64Ptr(50),
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	_, err = svc.JoinRoom(ctx, room.ID, member.ID)
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("err = %v; want ErrInsufficientFunds", err)
	}

	if got := userGold(t, db, member.ID); got != 25 {
		t.Errorf("balance = %d; want 25", got)
	}
	participants, _ := repository.NewParticipantRepository(db).ListByRoom(ctx, room.ID)
	if len(participants) != 1 { // owner only
		t.Errorf("participants = %d; want 1", len(participants))
	}
}

func TestJoinRoom_AlreadyMember(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner", 100)
	member := createUser(t, db, "member", 100)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	room, _ := svc.CreateRoom(ctx, owner.ID, service.CreateRoomInput{
		Name:     "general",
		RoomType: domain.RoomTypePublic,
	})

	if _, err := svc.JoinRoom(ctx, room.ID, member.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.JoinRoom(ctx, room.ID, member.ID); !errors.Is(err, service.ErrAlreadyMember) {
		t.Fatalf("second join err = %v; want ErrAlreadyMember", err)
	}

	// the creator joining their own room is also rejected
	if _, err := svc.JoinRoom(ctx, room.ID, owner.ID); !errors.Is(err, service.ErrAlreadyMember) {
		t.Fatalf("owner rejoin err = %v; want ErrAlreadyMember", err)
	}

	participants, _ := repository.NewParticipantRepository(db).ListByRoom(ctx, room.ID)
	if len(participants) != 2 {
		t.Errorf("participants = %d; want 2", len(participants))
	}
}

func TestJoinRoom_RoomFull(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner", 100)
	second := createUser(t, db, "second", 100)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	// creator fills the single slot
	room, err := svc.CreateRoom(ctx, owner.ID, service.CreateRoomInput{
		Name:            "tiny",
		RoomType:        domain.RoomTypePublic,
		MaxParticipants: intPtr(1),
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	if _, err := svc.JoinRoom(ctx, room.ID, second.ID); !errors.Is(err, service.ErrRoomFull) {
		t.Fatalf("err = %v; want ErrRoomFull", err)
	}
}

func TestJoinRoom_Inactive(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner", 100)
	member := createUser(t, db, "member", 100)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	room, _ := svc.CreateRoom(ctx, owner.ID, service.CreateRoomInput{
		Name:     "closed",
		RoomType: domain.RoomTypePublic,
	})
	if err := svc.DeactivateRoom(ctx, room.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.JoinRoom(ctx, room.ID, member.ID); !errors.Is(err, service.ErrRoomInactive) {
		t.Fatalf("err = %v; want ErrRoomInactive", err)
	}
}

func TestJoinRoom_NotFound(t *testing.T) {
	db := setupDB(t)
	member := createUser(t, db, "member", 100)
	svc := service.NewRoomService(db)

	if _, err := svc.JoinRoom(context.Background(), 424242, member.ID); !errors.Is(err, service.ErrRoomNotFound) {
		t.Fatalf("err = %v; want ErrRoomNotFound", err)
	}
}

// Concurrent joins against the last free slot: the room row lock must let
// exactly one through.
func TestJoinRoom_ConcurrentCapacity(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner", 100)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	// capacity 2: the creator takes one slot, one remains
	room, err := svc.CreateRoom(ctx, owner.ID, service.CreateRoomInput{
		Name:            "last slot",
		RoomType:        domain.RoomTypePublic,
		MaxParticipants: intPtr(2),
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	const joiners = 8
	users := make([]int64, joiners)
	for i := 0; i < joiners; i++ {
		users[i] = createUser(t, db, "joiner"+string(rune('a'+i)), 100).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.JoinRoom(ctx, room.ID, users[i])
		}(i)
	}
	wg.Wait()

	var succeeded, full int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrRoomFull):
			full++
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("successful joins = %d; want 1", succeeded)
	}
	if full != joiners-1 {
		t.Errorf("ErrRoomFull count = %d; want %d", full, joiners-1)
	}

	count := 0
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM room_participants WHERE room_id = $1`, room.ID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("roster size = %d; want 2 (never above max_participants)", count)
	}
}

// Concurrent debits against the same user: the balance must never go
// negative and only one of two 60-gold charges can land on a 100-gold user.
func TestCreateRoom_ConcurrentDebits(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "spender", 100)
	svc := service.NewRoomService(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateRoom(ctx, user.ID, service.CreateRoomInput{
				Name:     "premium " + string(rune('a'+i)),
				RoomType: domain.RoomTypePremium,
				GoldCost: int64Ptr(60),
			})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, service.ErrInsufficientFunds) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("successful creations = %d; want 1", succeeded)
	}

	if got := userGold(t, db, user.ID); got != 40 {
		t.Errorf("balance = %d; want 40", got)
	}
	checkLedgerMatchesBalance(t, db, user.ID, 100)
}
