package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestOrderOwnershipFilterAcceptsLegacyEmailAttribution(t *testing.T) {
	f := orderOwnershipFilter("order-1", "u1", "alice@test.com")

	assert.Equal(t, "order-1", f["_id"])
	assert.Equal(t, []bson.M{{"userId": "u1"}, {"userEmail": "alice@test.com"}}, f["$or"])
}

func TestOrderOwnershipFilterWithoutEmail(t *testing.T) {
	f := orderOwnershipFilter("order-1", "u1", "")

	assert.Equal(t, []bson.M{{"userId": "u1"}}, f["$or"])
}

// Une commande historique rattachée par email (userId absent ou erroné)
// apparaît dans la liste ; elle doit aussi s'ouvrir par id.
func TestGetOrderByIDFindsEmailAttributedOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("commande rattachée par email", func(mt *mtest.T) {
		database.Mongo = mt.Client.Database("giftwrap")

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "giftwrap.orders", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "order-1"},
			{Key: "userId", Value: ""},
			{Key: "userEmail", Value: "legacy@test.com"},
			{Key: "status", Value: "paid"},
			{Key: "total", Value: 350.0},
		}))

		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "order-1"}}
		c.Set("user_id", "u1")
		c.Set("email", "legacy@test.com")

		GetOrderByID(c)

		assert.Equal(mt, http.StatusOK, w.Code)

		var order models.Order
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &order))
		assert.Equal(mt, "order-1", order.ID)
		assert.Equal(mt, "legacy@test.com", order.UserEmail)

		// Le filtre envoyé à Mongo doit porter la même tolérance
		// d'attribution que la liste.
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)

		orClauses, err := evt.Command.LookupErr("filter", "$or")
		require.NoError(mt, err)
		values, err := orClauses.Array().Values()
		require.NoError(mt, err)
		require.Len(mt, values, 2)
		assert.Equal(mt, "legacy@test.com", values[1].Document().Lookup("userEmail").StringValue())
	})
}
