package advisor

import "github.com/suPer8Hu/krishi-mitra/internal/language"

var greetings = map[string]string{
	language.English:   "Namaste! 🙏 I am Krishi Mitra, your farming companion. Ask me about crops, pests and diseases, soil and fertilizers, weather, mandi prices or government schemes. How can I help you today? 🌾",
	language.Hindi:     "नमस्ते! 🙏 मैं कृषि मित्र हूं, आपका खेती साथी। फसल, कीट और रोग, मिट्टी और खाद, मौसम, मंडी भाव या सरकारी योजनाओं के बारे में पूछें। आज मैं आपकी क्या मदद कर सकता हूं? 🌾",
	language.Marathi:   "नमस्कार! 🙏 मी कृषी मित्र, तुमचा शेती सोबती. पिके, कीड व रोग, माती व खते, हवामान, बाजारभाव किंवा सरकारी योजनांबद्दल विचारा. आज मी तुम्हाला कशी मदत करू? 🌾",
	language.Punjabi:   "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! 🙏 ਮੈਂ ਕ੍ਰਿਸ਼ੀ ਮਿੱਤਰ ਹਾਂ, ਤੁਹਾਡਾ ਖੇਤੀ ਸਾਥੀ। ਫਸਲਾਂ, ਕੀੜੇ ਅਤੇ ਰੋਗ, ਮਿੱਟੀ ਅਤੇ ਖਾਦ, ਮੌਸਮ, ਮੰਡੀ ਭਾਅ ਜਾਂ ਸਰਕਾਰੀ ਸਕੀਮਾਂ ਬਾਰੇ ਪੁੱਛੋ। ਅੱਜ ਮੈਂ ਤੁਹਾਡੀ ਕੀ ਮਦਦ ਕਰ ਸਕਦਾ ਹਾਂ? 🌾",
	language.Malayalam: "നമസ്കാരം! 🙏 ഞാൻ കൃഷി മിത്ര, നിങ്ങളുടെ കൃഷി സുഹൃത്ത്. വിളകൾ, കീടങ്ങളും രോഗങ്ങളും, മണ്ണും വളവും, കാലാവസ്ഥ, വിപണി വില, സർക്കാർ പദ്ധതികൾ എന്നിവയെക്കുറിച്ച് ചോദിക്കൂ. ഇന്ന് ഞാൻ എങ്ങനെ സഹായിക്കണം? 🌾",
	language.Tamil:     "வணக்கம்! 🙏 நான் கிருஷி மித்ரா, உங்கள் விவசாயத் தோழன். பயிர்கள், பூச்சி மற்றும் நோய்கள், மண் மற்றும் உரம், வானிலை, சந்தை விலை அல்லது அரசுத் திட்டங்கள் பற்றிக் கேளுங்கள். இன்று நான் எப்படி உதவலாம்? 🌾",
	language.Telugu:    "నమస్కారం! 🙏 నేను కృషి మిత్ర, మీ వ్యవసాయ సహచరుడిని. పంటలు, పురుగులు మరియు తెగుళ్లు, నేల మరియు ఎరువులు, వాతావరణం, మార్కెట్ ధరలు లేదా ప్రభుత్వ పథకాల గురించి అడగండి. ఈ రోజు నేను మీకు ఎలా సహాయం చేయగలను? 🌾",
	language.Kannada:   "ನಮಸ್ಕಾರ! 🙏 ನಾನು ಕೃಷಿ ಮಿತ್ರ, ನಿಮ್ಮ ಕೃಷಿ ಸಂಗಾತಿ. ಬೆಳೆಗಳು, ಕೀಟ ಮತ್ತು ರೋಗಗಳು, ಮಣ್ಣು ಮತ್ತು ಗೊಬ್ಬರ, ಹವಾಮಾನ, ಮಾರುಕಟ್ಟೆ ಬೆಲೆ ಅಥವಾ ಸರ್ಕಾರಿ ಯೋಜನೆಗಳ ಬಗ್ಗೆ ಕೇಳಿ. ಇಂದು ನಾನು ನಿಮಗೆ ಹೇಗೆ ಸಹಾಯ ಮಾಡಲಿ? 🌾",
}

var outOfDomain = map[string]string{
	language.English: "I apologize, but I'm specifically designed to assist with farming and agricultural questions only. " +
		"I can help you with:\n" +
		"• Crop diseases and pest management\n" +
		"• Fertilizers and soil health\n" +
		"• Irrigation and water management\n" +
		"• Weather and climate advice\n" +
		"• Market prices and farming economics\n" +
		"• Livestock management\n\n" +
		"Please ask me a farming-related question, and I'll be happy to help!",
	language.Hindi: "मुझे खेद है, लेकिन मैं विशेष रूप से केवल खेती और कृषि संबंधी प्रश्नों में सहायता के लिए डिज़ाइन किया गया हूं।\n" +
		"मैं आपकी इनमें मदद कर सकता हूं:\n" +
		"• फसल रोग और कीट प्रबंधन\n" +
		"• उर्वरक और मिट्टी स्वास्थ्य\n" +
		"• सिंचाई और जल प्रबंधन\n" +
		"• मौसम और जलवायु सलाह\n" +
		"• बाजार मूल्य और खेती अर्थशास्त्र\n" +
		"• पशुधन प्रबंधन\n\n" +
		"कृपया मुझसे खेती से संबंधित प्रश्न पूछें, और मुझे आपकी मदद करने में खुशी होगी!",
	language.Marathi: "मला माफ करा, परंतु मी विशेषतः केवळ शेती आणि कृषी प्रश्नांसाठी मदत करण्यासाठी डिझाइन केलेले आहे।\n" +
		"मी तुम्हाला यामध्ये मदत करू शकतो:\n" +
		"• पीक रोग आणि कीटक व्यवस्थापन\n" +
		"• खते आणि माती आरोग्य\n" +
		"• सिंचन आणि पाणी व्यवस्थापन\n" +
		"• हवामान आणि हवामान सल्ला\n" +
		"• बाजार किंमती आणि शेती अर्थशास्त्र\n" +
		"• पशुधन व्यवस्थापन\n\n" +
		"कृपया मला शेतीशी संबंधित प्रश्न विचारा आणि मला तुम्हाला मदत करण्यात आनंद होईल!",
	language.Punjabi: "ਮੈਨੂੰ ਮਾਫ਼ ਕਰਨਾ, ਪਰ ਮੈਂ ਖਾਸ ਤੌਰ 'ਤੇ ਸਿਰਫ਼ ਖੇਤੀਬਾੜੀ ਅਤੇ ਖੇਤੀਬਾੜੀ ਸਵਾਲਾਂ ਵਿੱਚ ਸਹਾਇਤਾ ਲਈ ਤਿਆਰ ਕੀਤਾ ਗਿਆ ਹਾਂ।\n" +
		"ਮੈਂ ਇਹਨਾਂ ਵਿੱਚ ਤੁਹਾਡੀ ਮਦਦ ਕਰ ਸਕਦਾ ਹਾਂ:\n" +
		"• ਫਸਲ ਰੋਗ ਅਤੇ ਕੀਟ ਪ੍ਰਬੰਧਨ\n" +
		"• ਖਾਦ ਅਤੇ ਮਿੱਟੀ ਦੀ ਸਿਹਤ\n" +
		"• ਸਿੰਚਾਈ ਅਤੇ ਪਾਣੀ ਪ੍ਰਬੰਧਨ\n" +
		"• ਮੌਸਮ ਅਤੇ ਜਲਵਾਯੂ ਸਲਾਹ\n" +
		"• ਮਾਰਕੀਟ ਕੀਮਤਾਂ ਅਤੇ ਖੇਤੀਬਾੜੀ ਅਰਥਸ਼ਾਸਤਰ\n" +
		"• ਪਸ਼ੂ ਪ੍ਰਬੰਧਨ\n\n" +
		"ਕਿਰਪਾ ਕਰਕੇ ਮੈਨੂੰ ਖੇਤੀਬਾੜੀ ਨਾਲ ਸਬੰਧਤ ਸਵਾਲ ਪੁੱਛੋ, ਅਤੇ ਮੈਨੂੰ ਮਦਦ ਕਰਨ ਵਿੱਚ ਖੁਸ਼ੀ ਹੋਵੇਗੀ!",
	language.Malayalam: "ക്ഷമിക്കണം, പക്ഷേ ഞാൻ പ്രത്യേകമായി കൃഷിയും കാർഷിക ചോദ്യങ്ങളും മാത്രം സഹായിക്കാൻ രൂപകൽപ്പന ചെയ്തിട്ടുള്ളതാണ്।\n" +
		"എനിക്ക് ഇവയിൽ നിങ്ങളെ സഹായിക്കാൻ കഴിയും:\n" +
		"• വിള രോഗങ്ങളും കീടനിയന്ത്രണവും\n" +
		"• രാസവളങ്ങളും മണ്ണ് ആരോഗ്യവും\n" +
		"• ജലസേചനവും ജല പരിപാലനവും\n" +
		"• കാലാവസ്ഥ ഉപദേശം\n" +
		"• വിപണി വിലകളും കാർഷിക സാമ്പത്തികശാസ്ത്രവും\n" +
		"• കന്നുകാലി പരിപാലനം\n\n" +
		"ദയവായി എന്നോട് കൃഷിയുമായി ബന്ധപ്പെട്ട ചോദ്യം ചോദിക്കൂ, എനിക്ക് സഹായിക്കാൻ സന്തോഷമുണ്ട്!",
}

var apologies = map[string]string{
	language.English:   "I'm sorry, I'm having trouble connecting right now. Please try again in a moment. 🙏",
	language.Hindi:     "क्षमा करें, अभी कनेक्शन में समस्या हो रही है। कृपया थोड़ी देर में पुन: प्रयास करें। 🙏",
	language.Marathi:   "माफ करा, सध्या कनेक्शनमध्ये अडचण आहे. कृपया थोड्या वेळाने पुन्हा प्रयत्न करा. 🙏",
	language.Punjabi:   "ਮਾਫ਼ ਕਰਨਾ, ਹੁਣ ਕਨੈਕਸ਼ਨ ਵਿੱਚ ਸਮੱਸਿਆ ਹੈ। ਕਿਰਪਾ ਕਰਕੇ ਥੋੜ੍ਹੀ ਦੇਰ ਬਾਅਦ ਦੁਬਾਰਾ ਕੋਸ਼ਿਸ਼ ਕਰੋ। 🙏",
	language.Malayalam: "ക്ഷമിക്കണം, ഇപ്പോൾ കണക്ഷനിൽ പ്രശ്നമുണ്ട്. ഒരു നിമിഷത്തിനുള്ളിൽ വീണ്ടും ശ്രമിക്കുക. 🙏",
	language.Tamil:     "மன்னிக்கவும், இப்போது இணைப்பில் சிக்கல் உள்ளது. சிறிது நேரம் கழித்து மீண்டும் முயற்சிக்கவும். 🙏",
	language.Telugu:    "క్షమించండి, ప్రస్తుతం కనెక్షన్‌లో సమస్య ఉంది. దయచేసి కొన్ని క్షణాల్లో మళ్ళీ ప్రయత్నించండి. 🙏",
	language.Kannada:   "ಕ್ಷಮಿಸಿ, ಈಗ ಸಂಪರ್ಕದಲ್ಲಿ ಸಮಸ್ಯೆ ಇದೆ. ದಯವಿಟ್ಟು ಸ್ವಲ್ಪ ಸಮಯದ ನಂತರ ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ. 🙏",
}

func localized(table map[string]string, lang string) string {
	if s, ok := table[language.Resolve(lang)]; ok {
		return s
	}
	return table[language.English]
}

func Greeting(lang string) string    { return localized(greetings, lang) }
func OutOfDomain(lang string) string { return localized(outOfDomain, lang) }
func Apology(lang string) string     { return localized(apologies, lang) }
