package corpus

import (
	"strconv"

	"github.com/mcncl/coercekit/internal/models"
)

const (
	nullKey  = "15563021738ans_104_985806_1950"
	imageURL = "https://ss0.bdstatic.com/94oJfD_bAAcT8t7mm9GUKT-xh_/timg?image&quality=100&size=b4000_4000&sec=1588652393&di=798779f1fbc18ed59bca3433c57ca01a&src=http://a2.att.hudong.com/36/48/19300001357258133412489354717.jpg"

	destination     = `{"url":"https://www.baidu.com/event/emlesson","intentData":{"className_ios":"WebViewBaseVC","className_android":"com.fanye.serialization.MainActivity"}}`
	objectList      = `[{"cc":"1111"},{"cc":"2222"}]`
	stringMatrix    = `[["11","bb1"],["22","bb2"]]`
	objectMatrix    = `[[{"id":"11","tab":"bb1"}],[{"id":"22","tab":"bb2"}]]`
	platformNames   = `{"android":"aaaa","ios":"bbbb"}`
	smallObject     = `{"aa":"00"}`
	smallObjectList = `[{"aa":"00"}]`
)

// escaped embeds doc as a JSON string value, the way some servers
// double-encode nested documents.
func escaped(doc string) string {
	return strconv.Quote(doc)
}

// Document shapes. Each category keeps the field under test in one place.
func statusDoc(v string) string { return `{"id":100,"name":"sssss","status":` + v + `}` }
func idDoc(v string) string     { return `{"id":` + v + `,"name":"sssss"}` }
func articleDoc(field, v string) string {
	return `{"id":"111","title":"培养一种习惯","describe":"","imageUrl":"` + imageURL + `","` + field + `":` + v + `}`
}
func listDoc(field, v string) string {
	return `[{"id":"111","name":"ssss","` + field + `":` + v + `}]`
}

func destinationValue() models.JSONObject {
	return models.JSONObject{
		"url": "https://www.baidu.com/event/emlesson",
		"intentData": models.JSONObject{
			"className_ios":     "WebViewBaseVC",
			"className_android": "com.fanye.serialization.MainActivity",
		},
	}
}

func booleanCases() []models.TestCase {
	return numbered(
		fixture{"boolean given a boolean, decodes normally", statusDoc(`true`), "status", models.PassThrough()},
		fixture{"boolean given a float, non-zero decodes as true", statusDoc(`1.6`), "status", models.Exact(true)},
		fixture{"boolean given an integer, non-zero decodes as true", statusDoc(`14`), "status", models.Exact(true)},
		fixture{"boolean given an empty string, decodes as false", statusDoc(`""`), "status", models.Default()},
		fixture{"boolean given a string, decodes as false", statusDoc(`"sss"`), "status", models.Default()},
		fixture{"boolean given a quoted boolean, decodes normally", statusDoc(`"true"`), "status", models.Exact(true)},
		fixture{"boolean given a quoted integer, decodes as false", statusDoc(`"111"`), "status", models.Default()},
		fixture{"boolean given a quoted float, decodes as false", statusDoc(`"111.3"`), "status", models.Default()},
		fixture{"boolean given an object, decodes as false", statusDoc(`{"id":"888"}`), "status", models.Default()},
		fixture{"boolean given an array, decodes as false", statusDoc(`[{"id":"888"}]`), "status", models.Default()},
		fixture{"boolean given an escaped object, decodes as false", statusDoc(escaped(`{"id":"888"}`)), "status", models.Default()},
		fixture{"boolean given an escaped array, decodes as false", statusDoc(escaped(`[{"id":"888"}]`)), "status", models.Default()},
	)
}

// integerCases covers the fixed-width integer targets. The boundary
// fixtures differ per width, the rest is shared.
func integerCases(target models.TargetType) []models.TestCase {
	var (
		normal, float, outOfRange, quotedOutOfRange string
		want                                        any
		quoted                                      any
	)
	switch target {
	case models.TargetInt8:
		normal, float, outOfRange, quotedOutOfRange = `1`, `1232.6`, `128`, `"128"`
		want, quoted = int8(1), int8(16)
	case models.TargetInt16:
		normal, float, outOfRange, quotedOutOfRange = `1`, `1232.6`, `32768`, `"327671"`
		want, quoted = int16(1), int16(16)
	case models.TargetInt32:
		normal, float, outOfRange, quotedOutOfRange = `100`, `1.6`, `21474836475`, `"1623332234234242"`
		want, quoted = int32(100), int32(16)
	default:
		return integer64Cases()
	}
	name := target.String()
	return numbered(
		fixture{name + " given an in-range integer, decodes normally", idDoc(normal), "id", models.Exact(want)},
		fixture{name + " given a float, decodes as 0", idDoc(float), "id", models.Default()},
		fixture{name + " given an integer outside its range, decodes as 0", idDoc(outOfRange), "id", models.Default()},
		fixture{name + " given a boolean, decodes as 0", idDoc(`true`), "id", models.Default()},
		fixture{name + " given an empty string, decodes as 0", idDoc(`""`), "id", models.Default()},
		fixture{name + " given a string, decodes as 0", idDoc(`"sdssdfs"`), "id", models.Default()},
		fixture{name + " given a quoted boolean, decodes as 0", idDoc(`"true"`), "id", models.Default()},
		fixture{name + " given a quoted in-range integer, decodes normally", idDoc(`"16"`), "id", models.Exact(quoted)},
		fixture{name + " given a quoted integer outside its range, decodes as 0", idDoc(quotedOutOfRange), "id", models.Default()},
		fixture{name + " given a quoted float, decodes as 0", idDoc(`"1.6555555"`), "id", models.Default()},
		fixture{name + " given an object, decodes as 0", idDoc(smallObject), "id", models.Default()},
		fixture{name + " given an array, decodes as 0", idDoc(smallObjectList), "id", models.Default()},
	)
}

func integer64Cases() []models.TestCase {
	return numbered(
		fixture{"integer64 given an integer, decodes normally", idDoc(`122222221222`), "id", models.Exact(int64(122222221222))},
		fixture{"integer64 given a float, decodes as 0", idDoc(`1.6`), "id", models.Default()},
		fixture{"integer64 given a boolean, decodes as 0", idDoc(`true`), "id", models.Default()},
		fixture{"integer64 given an empty string, decodes as 0", idDoc(`""`), "id", models.Default()},
		fixture{"integer64 given a string, decodes as 0", idDoc(`"sdssdfs"`), "id", models.Default()},
		fixture{"integer64 given a quoted boolean, decodes as 0", idDoc(`"true"`), "id", models.Default()},
		fixture{"integer64 given a quoted integer, decodes normally", idDoc(`"16"`), "id", models.Exact(int64(16))},
		fixture{"integer64 given a quoted float, decodes as 0", idDoc(`"1.6555555"`), "id", models.Default()},
		fixture{"integer64 given an object, decodes as 0", idDoc(smallObject), "id", models.Default()},
		fixture{"integer64 given an array, decodes as 0", idDoc(smallObjectList), "id", models.Default()},
	)
}

func float32Cases() []models.TestCase {
	return numbered(
		fixture{"float32 given a float, decodes rounded to 32 bits", idDoc(`122342424232424.333`), "id", models.Exact(float32(122342424232424.333))},
		fixture{"float32 given an integer, decodes rounded to 32 bits", idDoc(`1223424456462423`), "id", models.Exact(float32(1223424456462423))},
		fixture{"float32 given a boolean, decodes as 0.0", idDoc(`true`), "id", models.Default()},
		fixture{"float32 given an empty string, decodes as 0.0", idDoc(`""`), "id", models.Default()},
		fixture{"float32 given a string, decodes as 0.0", idDoc(`"sdssdfs"`), "id", models.Default()},
		fixture{"float32 given a quoted boolean, decodes as 0.0", idDoc(`"true"`), "id", models.Default()},
		fixture{"float32 given a quoted float, decodes normally", idDoc(`"16.33"`), "id", models.Exact(float32(16.33))},
		fixture{"float32 given a quoted integer, decodes normally", idDoc(`"1635353534535353553"`), "id", models.Exact(float32(1635353534535353553))},
		fixture{"float32 given an object, decodes as 0.0", idDoc(smallObject), "id", models.Default()},
		fixture{"float32 given an array, decodes as 0.0", idDoc(smallObjectList), "id", models.Default()},
	)
}

func float64Cases() []models.TestCase {
	return numbered(
		fixture{"float64 given a float, decodes normally", idDoc(`122342424232424.333`), "id", models.Exact(float64(122342424232424.333))},
		fixture{"float64 given an integer, decodes normally", idDoc(`12234242423`), "id", models.Exact(float64(12234242423))},
		fixture{"float64 given a boolean, decodes as 0.0", idDoc(`true`), "id", models.Default()},
		fixture{"float64 given an empty string, decodes as 0.0", idDoc(`""`), "id", models.Default()},
		fixture{"float64 given a string, decodes as 0.0", idDoc(`"sdssdfs"`), "id", models.Default()},
		fixture{"float64 given a quoted boolean, decodes as 0.0", idDoc(`"true"`), "id", models.Default()},
		fixture{"float64 given a quoted float, decodes normally", idDoc(`"16.33"`), "id", models.Exact(float64(16.33))},
		fixture{"float64 given a quoted integer, decodes normally", idDoc(`"1564564646464646464466"`), "id", models.Exact(float64(1564564646464646464466))},
		fixture{"float64 given an object, decodes as 0.0", idDoc(smallObject), "id", models.Default()},
		fixture{"float64 given an array, decodes as 0.0", idDoc(smallObjectList), "id", models.Default()},
	)
}

func textCases() []models.TestCase {
	return numbered(
		fixture{"text given a float, decodes as its literal", idDoc(`122342424232424.333`), "id", models.Exact("122342424232424.333")},
		fixture{"text given an integer, decodes as its literal", idDoc(`12234242423`), "id", models.Exact("12234242423")},
		fixture{"text given a boolean, decodes as \"true\"", idDoc(`true`), "id", models.Exact("true")},
		fixture{"text given an empty string, decodes as the empty string", idDoc(`""`), "id", models.PassThrough()},
		fixture{"text given a string, decodes normally", idDoc(`"sdssdfs"`), "id", models.PassThrough()},
		fixture{"text given a quoted boolean, decodes as the string", idDoc(`"true"`), "id", models.PassThrough()},
		fixture{"text given a quoted float, decodes as the string", idDoc(`"16.33"`), "id", models.PassThrough()},
		fixture{"text given a quoted integer, decodes as the string", idDoc(`"1564564646464646464466"`), "id", models.PassThrough()},
		fixture{"text given an object, decodes as its JSON text", idDoc(smallObject), "id", models.Exact(smallObject)},
		fixture{"text given an array, decodes as its JSON text", idDoc(smallObjectList), "id", models.Exact(smallObjectList)},
	)
}

// documentCases covers object and map targets, which share fixtures.
func documentCases(target models.TargetType) []models.TestCase {
	name := target.String()
	raw, desc := documentString(target)
	return numbered(
		fixture{name + " given a number, decodes as absent", articleDoc("data1", `2222`), "data1", models.Default()},
		fixture{name + " given an object, decodes normally", articleDoc("data2", destination), "data2", models.PassThrough()},
		fixture{name + " given an escaped object, decodes the nested document", articleDoc("data3", escaped(destination)), "data3", models.Exact(destinationValue())},
		fixture{name + " given a boolean, decodes as absent", articleDoc("data4", `true`), "data4", models.Default()},
		fixture{name + " given a quoted boolean, decodes as absent", articleDoc("data5", `"true"`), "data5", models.Default()},
		fixture{name + " given a quoted number, decodes as absent", articleDoc("data6", `"222"`), "data6", models.Default()},
		fixture{name + " given an empty string, decodes as absent", articleDoc("data7", `""`), "data7", models.Default()},
		fixture{name + " given " + desc + ", decodes as absent", articleDoc("data8", raw), "data8", models.Default()},
		fixture{name + " given an array, decodes as absent", articleDoc("data9", `[`+destination+`]`), "data9", models.Default()},
		fixture{name + " given an escaped array, decodes as absent", articleDoc("data10", escaped(`[`+destination+`]`)), "data10", models.Default()},
	)
}

// documentString keeps the map catalog's empty data8 value as recorded.
func documentString(target models.TargetType) (raw, desc string) {
	if target == models.TargetMap {
		return `""`, "an empty string"
	}
	return `"sdfsfds"`, "a string"
}

func arrayCases() []models.TestCase {
	return numbered(
		fixture{"array given a number, decodes as absent", listDoc("list1", `333`), "0.list1", models.Default()},
		fixture{"array given an array, decodes normally", listDoc("list2", objectList), "0.list2", models.PassThrough()},
		fixture{"array given an escaped array, decodes the nested document", listDoc("list3", escaped(objectList)), "0.list3",
			models.Exact(models.JSONArray{models.JSONObject{"cc": "1111"}, models.JSONObject{"cc": "2222"}})},
		fixture{"array given an escaped array of string arrays, decodes the nested document", listDoc("list4", escaped(stringMatrix)), "0.list4",
			models.Exact(models.JSONArray{models.JSONArray{"11", "bb1"}, models.JSONArray{"22", "bb2"}})},
		fixture{"array given an array of string arrays, decodes normally", listDoc("list5", stringMatrix), "0.list5", models.PassThrough()},
		fixture{"array given an escaped array of object arrays, decodes the nested document", listDoc("list6", escaped(objectMatrix)), "0.list6",
			models.Exact(models.JSONArray{
				models.JSONArray{models.JSONObject{"id": "11", "tab": "bb1"}},
				models.JSONArray{models.JSONObject{"id": "22", "tab": "bb2"}},
			})},
		fixture{"array given an array of object arrays, decodes normally", listDoc("list7", objectMatrix), "0.list7", models.PassThrough()},
		fixture{"array given a boolean, decodes as absent", listDoc("list8", `true`), "0.list8", models.Default()},
		fixture{"array given a quoted boolean, decodes as absent", listDoc("list9", `"true"`), "0.list9", models.Default()},
		fixture{"array given a quoted number, decodes as absent", listDoc("list10", `"111"`), "0.list10", models.Default()},
		fixture{"array given an empty string, decodes as absent", listDoc("list11", `""`), "0.list11", models.Default()},
		fixture{"array given a non-JSON string, decodes as absent", listDoc("list12", `"sdfsfs"`), "0.list12", models.Default()},
		fixture{"array given an object, decodes as absent", listDoc("list13", platformNames), "0.list13", models.Default()},
		fixture{"array given an escaped object, decodes as absent", listDoc("list14", escaped(platformNames)), "0.list14", models.Default()},
	)
}

// nullFieldCases describe whole documents; the field under test is every
// field of models.NullRecord at once.
func nullFieldCases() []models.TestCase {
	defaults := models.NullRecord{Key: nullKey, Persistent: true}
	quotedNull := defaults
	quotedNull.TestString = "null"

	return numbered(
		fixture{
			"every typed field sent as null, decodes to defaults",
			`{"key":"` + nullKey + `","testInt":null,"testShort":null,"testByte":null,"testLong":null,"testFloat":null,"testDouble":null,"testString":null,"testBoolean":null,"maps":null,"dataReq":null,"dataReqs":null,"dataReqRight":{"key":"sfdsfsfsfds","callBack":"rwrwerwrwrtfdg3453","testNull":null},"value":{"ans":[null,"uck"],"ans2":{"aaa":null,"bbb":"sssss"},"dataReq":null,"dataReqs":null,"itemIdMap":{"1":"1050236"},"time":28},"persistent":true}`,
			"", models.Exact(defaults),
		},
		fixture{
			"object field sent as null and the rest missing, decodes to defaults",
			`{"key":"` + nullKey + `","dataReq":null,"dataReqRight":{"key":"sfdsfsfsfds","callBack":"rwrwerwrwrtfdg3453","testNull":null},"value":{"ans":[null,"uck"],"ans2":{"aaa":null,"bbb":"sssss"},"dataReq":null,"dataReqs":null,"itemIdMap":{"1":"1050236"},"time":28},"persistent":true}`,
			"", models.Exact(defaults),
		},
		fixture{
			"every typed field sent as the string \"null\", only text keeps it",
			`{"key":"` + nullKey + `","testInt":"null","testShort":"null","testByte":"null","testLong":"null","testFloat":"null","testDouble":"null","testString":"null","testBoolean":"null","maps":"null","dataReq":"null","dataReqs":"null","dataReqRight":{"key":"sfdsfsfsfds","callBack":"rwrwerwrwrtfdg3453","testNull":"null"},"value":{"ans":["null","uck"],"ans2":{"aaa":"null","bbb":"sssss"},"dataReq":"null","dataReqs":"null","itemIdMap":{"1":"1050236"},"time":28},"persistent":true}`,
			"", models.Exact(quotedNull),
		},
	)
}

// categories is built once and never modified; Get hands out copies.
var categories = map[models.TargetType][]models.TestCase{
	models.TargetBoolean:   AppendInvalid(booleanCases()),
	models.TargetInt8:      AppendInvalid(integerCases(models.TargetInt8)),
	models.TargetInt16:     AppendInvalid(integerCases(models.TargetInt16)),
	models.TargetInt32:     AppendInvalid(integerCases(models.TargetInt32)),
	models.TargetInt64:     AppendInvalid(integerCases(models.TargetInt64)),
	models.TargetFloat32:   AppendInvalid(float32Cases()),
	models.TargetFloat64:   AppendInvalid(float64Cases()),
	models.TargetText:      AppendInvalid(textCases()),
	models.TargetObject:    AppendInvalid(documentCases(models.TargetObject)),
	models.TargetArray:     AppendInvalid(arrayCases()),
	models.TargetMap:       AppendInvalid(documentCases(models.TargetMap)),
	models.TargetNullField: nullFieldCases(),
	models.TargetNotJSON:   AppendInvalid(nil),
}
