package validators

import "go.mongodb.org/mongo-driver/bson"

var ContactMessageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"message",
			"sent_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"message": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"sent_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
