package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgdesk/admin/internal/enterprise"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/session"
	"github.com/orgdesk/admin/internal/transport"
)

func TestService_Login(t *testing.T) {
	type args struct {
		creds session.Credentials
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(inv *transport.MockInvoker, repo *session.MockRepository)
		wantUser  session.User
		wantToken string
		wantNote  string
		wantErr   bool
	}

	creds := session.Credentials{Email: "ana@example.com", Password: "secret"}

	tests := []testCase{
		{
			name: "Success",
			args: args{creds: creds},
			setupMock: func(inv *transport.MockInvoker, repo *session.MockRepository) {
				inv.EXPECT().
					Invoke(gomock.Any(), http.MethodPost, "/auth/login", creds).
					Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":{"token":"abc","user":{"id":3,"name":"Ana","email":"ana@example.com"}}}`)}, nil)
				repo.EXPECT().Put(gomock.Any(), session.KeyUser, `{"id":3,"name":"Ana","email":"ana@example.com"}`).Return(nil)
				repo.EXPECT().Put(gomock.Any(), session.KeyToken, "abc").Return(nil)
			},
			wantUser:  session.User{ID: "3", Name: "Ana", Email: "ana@example.com"},
			wantToken: "abc",
		},
		{
			name: "Rejected",
			args: args{creds: creds},
			setupMock: func(inv *transport.MockInvoker, _ *session.MockRepository) {
				inv.EXPECT().
					Invoke(gomock.Any(), http.MethodPost, "/auth/login", creds).
					Return(nil, &transport.Error{Kind: transport.KindTransport, Status: http.StatusUnauthorized, Message: "Invalid credentials"})
			},
			wantNote: "Invalid credentials",
			wantErr:  true,
		},
		{
			name: "NoToken",
			args: args{creds: creds},
			setupMock: func(inv *transport.MockInvoker, _ *session.MockRepository) {
				inv.EXPECT().
					Invoke(gomock.Any(), http.MethodPost, "/auth/login", creds).
					Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":{}}`)}, nil)
			},
			wantNote: "login response has no token",
			wantErr:  true,
		},
		{
			name: "EmptyResponse",
			args: args{creds: creds},
			setupMock: func(inv *transport.MockInvoker, _ *session.MockRepository) {
				inv.EXPECT().
					Invoke(gomock.Any(), http.MethodPost, "/auth/login", creds).
					Return(nil, nil)
			},
			wantNote: "empty response",
			wantErr:  true,
		},
		{
			name: "PersistFails",
			args: args{creds: creds},
			setupMock: func(inv *transport.MockInvoker, repo *session.MockRepository) {
				inv.EXPECT().
					Invoke(gomock.Any(), http.MethodPost, "/auth/login", creds).
					Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":{"token":"abc"}}`)}, nil)
				repo.EXPECT().Put(gomock.Any(), session.KeyUser, gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			inv := transport.NewMockInvoker(ctrl)
			repo := session.NewMockRepository(ctrl)
			tt.setupMock(inv, repo)

			notes := &notify.Buffer{}
			state := session.NewState(repo)
			svc := session.NewService(state, inv, enterprise.NewMockViewSink(ctrl), notes)

			got, err := svc.Login(context.Background(), tt.args.creds)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, state.Token())

				drained := notes.Drain()
				require.Len(t, drained, 1)
				assert.Equal(t, notify.KindNegative, drained[0].Kind)

				if tt.wantNote != "" {
					assert.Equal(t, tt.wantNote, drained[0].Message)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got)
			assert.Equal(t, tt.wantToken, state.Token())
		})
	}
}

func TestService_SelectEnterprise(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := session.NewMockRepository(ctrl)
	view := enterprise.NewMockViewSink(ctrl)

	svc := session.NewService(session.NewState(repo), transport.NewMockInvoker(ctrl), view, &notify.Buffer{})

	selected := enterprise.Enterprise{ID: "9", Headquarters: true, CounterID: "4"}

	gomock.InOrder(
		repo.EXPECT().Put(gomock.Any(), session.KeyEnterpriseView, "9").Return(nil),
		view.EXPECT().SetView(selected),
	)

	require.NoError(t, svc.SelectEnterprise(context.Background(), selected))
	assert.Equal(t, "9", svc.State().EnterpriseView())

	// A failed write does not reach the enterprise store.
	repo.EXPECT().Put(gomock.Any(), session.KeyEnterpriseView, "10").Return(errors.New("locked"))

	require.Error(t, svc.SelectEnterprise(context.Background(), enterprise.Enterprise{ID: "10"}))
	assert.Equal(t, "9", svc.State().EnterpriseView())
}

func TestService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := session.NewMockRepository(ctrl)
	inv := transport.NewMockInvoker(ctrl)

	state := session.NewState(repo)
	svc := session.NewService(state, inv, enterprise.NewMockViewSink(ctrl), &notify.Buffer{})

	repo.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	require.NoError(t, state.Save(context.Background(), session.User{ID: "1"}, "tok"))

	inv.EXPECT().
		Invoke(gomock.Any(), http.MethodPost, "/auth/logout", nil).
		Return(nil, errors.New("offline"))
	repo.EXPECT().
		Delete(gomock.Any(), session.KeyUser, session.KeyToken, session.KeyEnterpriseView).
		Return(nil)

	require.NoError(t, svc.Logout(context.Background()))

	_, err := state.User()
	assert.ErrorIs(t, err, session.ErrNoSession)
	assert.Empty(t, state.Token())
}

func TestState_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
		require.NoError(t, err)

		return s
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "NoToken", token: "", want: true},
		{name: "Opaque", token: "12|KxY0pl", want: false},
		{name: "NoExpiry", token: sign(jwt.MapClaims{"sub": "1"}), want: false},
		{name: "Valid", token: sign(jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), want: false},
		{name: "Past", token: sign(jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := session.NewMockRepository(ctrl)
			repo.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			state := session.NewState(repo)
			require.NoError(t, state.Save(context.Background(), session.User{}, tt.token))

			assert.Equal(t, tt.want, state.Expired(now))
		})
	}
}
