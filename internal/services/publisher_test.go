package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/sbilibin2017/gw-fintech-demo/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := services.NewMockKafkaWriter(ctrl)
	publisher := services.NewKafkaPublisher(writer, "transactions")

	txn := models.Transaction{ID: "t1", Amount: 10, Currency: "NGN"}

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, "t1", string(msgs[0].Key))

			var got models.Transaction
			require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
			assert.Equal(t, txn.ID, got.ID)
			assert.Equal(t, txn.Amount, got.Amount)
			return nil
		})

	publisher.Publish(context.Background(), txn.ID, txn)
}

func TestKafkaPublisher_PublishErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := services.NewMockKafkaWriter(ctrl)
	publisher := services.NewKafkaPublisher(writer, "fraud-alerts")

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), "a1", models.FraudAlert{ID: "a1"})
	})
}

func TestKafkaPublisher_NilWriter(t *testing.T) {
	publisher := services.NewKafkaPublisher(nil, "transactions")

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), "t1", models.Transaction{ID: "t1"})
	})
	assert.NoError(t, publisher.Close())
}

func TestKafkaPublisher_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := services.NewMockKafkaWriter(ctrl)
	publisher := services.NewKafkaPublisher(writer, "transactions")

	writer.EXPECT().Close().Return(nil)
	assert.NoError(t, publisher.Close())
}
